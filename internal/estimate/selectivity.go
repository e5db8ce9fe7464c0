package estimate

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
)

// juelSpecType is the only recognized "type" value for a selectivity
// specification. The name is inherited from the expression-language
// marker used by the systems this core's wire format descends from; it
// has no other significance here.
const juelSpecType = "juel"

// specWire is the JSON shape of a selectivity specification, as persisted
// in a configuration value: {"type","p","lower","upper","coeff"}.
//
// Missing "type" defaults to juelSpecType on decode via UnmarshalJSON.
type specWire struct {
	Type  string  `json:"type"`
	P     float64 `json:"p" validate:"gte=0,lte=1"`
	Lower float64 `json:"lower" validate:"gte=0"`
	Upper float64 `json:"upper" validate:"gtefield=Lower"`
	Coeff float64 `json:"coeff"`
}

func (w *specWire) UnmarshalJSON(data []byte) error {
	type alias specWire
	aux := alias{Type: juelSpecType}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*w = specWire(aux)
	return nil
}

var specValidator = validator.New(validator.WithRequiredStructEnabled())

// ParseSpec decodes and validates a selectivity specification string,
// returning the PIE it describes with KeyString set to key.
//
// Any "type" other than "juel" fails with a SpecificationError wrapping
// UnknownSpecificationTypeError. Any other decode or validation failure
// fails with a SpecificationError wrapping the underlying cause.
func ParseSpec(key, raw string) (PIE, error) {
	var wire specWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return PIE{}, &SpecificationError{Key: key, Cause: err}
	}
	if wire.Type != juelSpecType {
		return PIE{}, &SpecificationError{Key: key, Cause: &UnknownSpecificationTypeError{Type: wire.Type}}
	}
	if err := specValidator.Struct(&wire); err != nil {
		return PIE{}, &SpecificationError{Key: key, Cause: convertValidationError(err)}
	}
	return PIE{
		Lower:     wire.Lower,
		Upper:     wire.Upper,
		P:         wire.P,
		Coeff:     wire.Coeff,
		KeyString: key,
	}, nil
}

// convertValidationError normalizes go-playground/validator errors into a
// single readable cause, taking only the first failing field so the
// wrapping SpecificationError stays a one-line message.
func convertValidationError(err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		return fmt.Errorf("field %q failed validation for tag %q", fe.Field(), fe.Tag())
	}
	return err
}

// LoadSelectivity looks up an optional string configuration property
// named key and parses it as a selectivity specification.
//
// If the key is absent, this logs a warning and returns the zero PIE with
// ok == false: callers should fall back to a default estimator in that
// case, per the soft MissingSpecificationError failure mode. If the key is
// present but malformed, this returns a non-nil *SpecificationError, which
// callers must not silently ignore.
func LoadSelectivity(getProperty func(key string) (string, bool), key string) (pie PIE, ok bool, err error) {
	raw, present := getProperty(key)
	if !present {
		log.Printf("[WARN] estimate: %v", &MissingSpecificationError{Key: key})
		return PIE{}, false, nil
	}
	pie, err = ParseSpec(key, raw)
	if err != nil {
		return PIE{}, false, err
	}
	return pie, true, nil
}
