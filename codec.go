package stride

// EncoderFunc encodes a Go value into a wire format such as JSON or YAML.
// It returns the encoded byte slice, ready to be written to the response.
type EncoderFunc func(v any) ([]byte, error)

// DecoderFunc decodes a byte slice (such as a request body) into the
// target Go value.
type DecoderFunc func(data []byte, v any) error

// IndentFunc encodes a value with indentation for pretty-printed output.
// Typically wraps MarshalIndent of the chosen codec.
type IndentFunc func(v any, prefix, indent string) ([]byte, error)
