package xmlnode

import (
	"errors"
)

// getScalar looks up the text of child name and parses it. A missing child
// or a child without text reports false with no error.
func getScalar[T any](c container, name string, parse func(string) (T, error)) (T, bool, error) {
	var zero T
	s, ok := c.GetString(name)
	if !ok {
		return zero, false, nil
	}
	v, err := parse(s)
	if err != nil {
		var wrongType *WrongTypeError
		if errors.As(err, &wrongType) {
			wrongType.Name = name
		}
		return zero, false, err
	}
	return v, true, nil
}

// GetInt8 parses the text of child name as a decimal byte. ok is false when the
// child is missing or has no text.
func (c container) GetInt8(name string) (int8, bool, error) {
	return getScalar(c, name, ParseInt8)
}

// GetInt16 parses the text of child name as a decimal short. ok is false when the
// child is missing or has no text.
func (c container) GetInt16(name string) (int16, bool, error) {
	return getScalar(c, name, ParseInt16)
}

// GetInt32 parses the text of child name as a decimal int. ok is false when the
// child is missing or has no text.
func (c container) GetInt32(name string) (int32, bool, error) {
	return getScalar(c, name, ParseInt32)
}

// GetInt64 parses the text of child name as a decimal long. ok is false when the
// child is missing or has no text.
func (c container) GetInt64(name string) (int64, bool, error) {
	return getScalar(c, name, ParseInt64)
}

// GetFloat32 parses the text of child name as a float. ok is false when the
// child is missing or has no text.
func (c container) GetFloat32(name string) (float32, bool, error) {
	return getScalar(c, name, ParseFloat32)
}

// GetFloat64 parses the text of child name as a double. ok is false when the
// child is missing or has no text.
func (c container) GetFloat64(name string) (float64, bool, error) {
	return getScalar(c, name, ParseFloat64)
}

// GetBool parses the text of child name as "true" or "false". ok is false when the
// child is missing or has no text.
func (c container) GetBool(name string) (bool, bool, error) {
	return getScalar(c, name, ParseBool)
}

// GetInt8Value is GetInt8 with a missing child read as the zero value.
func (c container) GetInt8Value(name string) (int8, error) {
	v, _, err := c.GetInt8(name)
	return v, err
}

// GetInt16Value is GetInt16 with a missing child read as the zero value.
func (c container) GetInt16Value(name string) (int16, error) {
	v, _, err := c.GetInt16(name)
	return v, err
}

// GetInt32Value is GetInt32 with a missing child read as the zero value.
func (c container) GetInt32Value(name string) (int32, error) {
	v, _, err := c.GetInt32(name)
	return v, err
}

// GetInt64Value is GetInt64 with a missing child read as the zero value.
func (c container) GetInt64Value(name string) (int64, error) {
	v, _, err := c.GetInt64(name)
	return v, err
}

// GetFloat32Value is GetFloat32 with a missing child read as the zero value.
func (c container) GetFloat32Value(name string) (float32, error) {
	v, _, err := c.GetFloat32(name)
	return v, err
}

// GetFloat64Value is GetFloat64 with a missing child read as the zero value.
func (c container) GetFloat64Value(name string) (float64, error) {
	v, _, err := c.GetFloat64(name)
	return v, err
}

// GetBoolValue is GetBool with a missing child read as the zero value.
func (c container) GetBoolValue(name string) (bool, error) {
	v, _, err := c.GetBool(name)
	return v, err
}
