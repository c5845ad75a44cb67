package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NetList fields of one scene file line
type NetList []string

// FromAnySlice converts basic values to their text form
func FromAnySlice(slice []any) NetList {
	if slice == nil {
		return NetList{}
	}
	result := make(NetList, len(slice))
	for i, v := range slice {
		result[i] = anyToString(v)
	}
	return result
}

// anyToString text form of a basic value, floats use the shortest exact representation
func anyToString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Duration:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

// String fields joined by single spaces
func (value NetList) String() string { return strings.Join(value, " ") }

// SeparationPrick splits a name like "P12" into ("P", 12)
func (value NetList) SeparationPrick(i int) (typeName string, id int) {
	nameStr := strings.ToUpper(value[i])
	for i, char := range nameStr {
		if char >= '0' && char <= '9' {
			typeName = nameStr[:i]
			id, _ = strconv.Atoi(nameStr[i:])
			break
		}
	}
	if typeName == "" {
		typeName = nameStr
	}
	return typeName, id
}

// ParseInt integer at i, defaultValue when absent or malformed
func (value NetList) ParseInt(i int, defaultValue int) int {
	if i < len(value) {
		if val, err := strconv.Atoi(value[i]); err == nil {
			return val
		}
	}
	return defaultValue
}

// ParseFloat64 float at i, defaultValue when absent or malformed
func (value NetList) ParseFloat64(i int, defaultValue float64) float64 {
	if i < len(value) {
		if val, err := strconv.ParseFloat(value[i], 64); err == nil {
			return val
		}
	}
	return defaultValue
}

// RequireFloat64 float at i, error when absent or malformed
func (value NetList) RequireFloat64(i int, name string) (float64, error) {
	if i >= len(value) {
		return 0, fmt.Errorf("missing %s", name)
	}
	val, err := strconv.ParseFloat(value[i], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return val, nil
}

// OptionalFloat64 float at i when present, error only when malformed
func (value NetList) OptionalFloat64(i int, name string, defaultValue float64) (float64, error) {
	if i >= len(value) {
		return defaultValue, nil
	}
	return value.RequireFloat64(i, name)
}

// RequireInt integer at i, error when absent or malformed
func (value NetList) RequireInt(i int, name string) (int, error) {
	if i >= len(value) {
		return 0, fmt.Errorf("missing %s", name)
	}
	val, err := strconv.Atoi(value[i])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return val, nil
}

// ParseString field at i, defaultValue when absent
func (value NetList) ParseString(i int, defaultValue string) string {
	if i < len(value) {
		return value[i]
	}
	return defaultValue
}
