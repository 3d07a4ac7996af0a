package repositories

import (
	"github.com/fxamacker/cbor/v2"
)

// Values are stored with Core Deterministic Encoding (RFC 8949 §4.2),
// the same record always produces the same bytes.
var encMode cbor.EncMode

// Unknown fields are ignored so older binaries can read newer records.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("repositories: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("repositories: CBOR decoder initialization failed: " + err.Error())
	}
}

func marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

func unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation of a stored value.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
