package xmlnode

import (
	"errors"
	"testing"
	"time"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name    string
		parse   func(string) (any, error)
		input   string
		want    any
		wantErr bool
	}{
		{"int8", wrap(ParseInt8), "127", int8(127), false},
		{"int8 negative", wrap(ParseInt8), "-128", int8(-128), false},
		{"int8 overflow", wrap(ParseInt8), "128", int8(0), true},
		{"int8 syntax", wrap(ParseInt8), "abc", int8(0), true},
		{"int16", wrap(ParseInt16), "+300", int16(300), false},
		{"int16 overflow", wrap(ParseInt16), "32768", int16(0), true},
		{"int32", wrap(ParseInt32), "5", int32(5), false},
		{"int32 space", wrap(ParseInt32), " 5", int32(0), true},
		{"int32 float text", wrap(ParseInt32), "5.0", int32(0), true},
		{"int64", wrap(ParseInt64), "9223372036854775807", int64(9223372036854775807), false},
		{"int64 overflow", wrap(ParseInt64), "9223372036854775808", int64(0), true},
		{"float32", wrap(ParseFloat32), " 1.5 ", float32(1.5), false},
		{"float32 overflow", wrap(ParseFloat32), "1e40", float32(0), true},
		{"float64", wrap(ParseFloat64), "-2.25e3", float64(-2250), false},
		{"float64 syntax", wrap(ParseFloat64), "1,5", float64(0), true},
		{"bool true", wrap(ParseBool), "true", true, false},
		{"bool false", wrap(ParseBool), "false", false, false},
		{"bool upper", wrap(ParseBool), "TRUE", true, false},
		{"bool mixed case", wrap(ParseBool), "False", false, false},
		{"bool zero", wrap(ParseBool), "0", false, true},
		{"bool one", wrap(ParseBool), "1", false, true},
		{"bool letter", wrap(ParseBool), "t", false, true},
		{"bool upper letter", wrap(ParseBool), "F", false, true},
		{"bool space", wrap(ParseBool), " true", false, true},
		{"bool invalid", wrap(ParseBool), "yes", false, true},
		{"bool empty", wrap(ParseBool), "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrWrongType) {
					t.Fatalf("expected ErrWrongType, got %v", err)
				}
				var wrongType *WrongTypeError
				if !errors.As(err, &wrongType) {
					t.Fatalf("expected *WrongTypeError, got %T", err)
				}
				if wrongType.Value != tt.input {
					t.Errorf("WrongTypeError.Value = %q, want %q", wrongType.Value, tt.input)
				}
				if wrongType.Err == nil {
					t.Error("WrongTypeError should carry the parse cause")
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func wrap[T any](parse func(string) (T, error)) func(string) (any, error) {
	return func(s string) (any, error) {
		v, err := parse(s)
		return v, err
	}
}

func TestWrongTypeError_Message(t *testing.T) {
	_, err := ParseInt32("x")
	if got, want := err.Error(), `xmlnode: cannot parse "x" as int32`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	err = &WrongTypeError{Name: "age", Value: "x", Type: "int32"}
	if got, want := err.Error(), `xmlnode: <age>: cannot parse "x" as int32`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, "null"},
		{"text", "text"},
		{true, "true"},
		{42, "42"},
		{int8(-8), "-8"},
		{int64(-3), "-3"},
		{uint16(7), "7"},
		{1.5, "1.5"},
		{float32(0.1), "0.1"},
		{1e21, "1e+21"},
		{time.Second, "1s"},
		{errors.New("boom"), "boom"},
		{[]int{1, 2}, "[1 2]"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value); got != tt.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatValue_RoundTrip(t *testing.T) {
	for _, v := range []float64{0.1, 1.0 / 3, -2.5e-10, 123456789} {
		got, err := ParseFloat64(FormatValue(v))
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Errorf("round trip of %v gave %v", v, got)
		}
	}
}
