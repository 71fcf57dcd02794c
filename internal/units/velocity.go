package units

// Speed unit names accepted for display conversion. Internally everything is
// metres per second.
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
)

// ConvertSpeed converts a speed in metres per second to the target display
// units. Unknown units fall back to m/s.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedMPS * 2.2369362920544
	case KMPH:
		return speedMPS * 3.6
	default:
		return speedMPS
	}
}
