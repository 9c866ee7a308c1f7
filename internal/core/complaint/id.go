package complaint

import (
	"fmt"
	"strings"
)

const (
	complaintIDPrefix = "CMP"
	logIDPrefix       = "LOG"
)

// GenerateComplaintID builds a complaint ID from a monotonic sequence and a random suffix.
// The format is CMP-XXXXXX-suffix; the suffix keeps IDs unique across processes
// that start from the same sequence.
func GenerateComplaintID(seq int, suffix string) string {
	return generateID(complaintIDPrefix, seq, suffix)
}

// GenerateLogID builds an escalation log ID in the same format with the LOG prefix.
func GenerateLogID(seq int, suffix string) string {
	return generateID(logIDPrefix, seq, suffix)
}

func generateID(prefix string, seq int, suffix string) string {
	return fmt.Sprintf("%s-%06d-%s", prefix, seq, strings.ToLower(suffix))
}

// ParseComplaintSequence extracts the sequence number from a complaint ID.
// Returns -1 if the ID format is invalid.
func ParseComplaintSequence(id string) int {
	return parseSequence(complaintIDPrefix, id)
}

// ParseLogSequence extracts the sequence number from an escalation log ID.
// Returns -1 if the ID format is invalid.
func ParseLogSequence(id string) int {
	return parseSequence(logIDPrefix, id)
}

func parseSequence(prefix, id string) int {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 || parts[0] != prefix || parts[2] == "" {
		return -1
	}
	var num int
	if _, err := fmt.Sscanf(parts[1], "%d", &num); err != nil || num < 0 {
		return -1
	}
	return num
}
