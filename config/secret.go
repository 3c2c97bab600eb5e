package config

const maskedSecret = "******"

// SecretValue is a configuration string that must not leak into logs.
type SecretValue string

func (s SecretValue) Value() string {
	return string(s)
}

func (s SecretValue) String() string {
	if s == "" {
		return ""
	}
	return maskedSecret
}

func (s SecretValue) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}
