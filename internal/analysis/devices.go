package analysis

import "inkflow/internal/models"

// AnalyzeDevices reports stylistic-device frequencies. All four are
// unimplemented measures returned as fixed values; the function keeps its
// text argument so a real detector is a drop-in replacement.
func AnalyzeDevices(text string) models.StylisticDevices {
	_ = text
	return models.StylisticDevices{
		MetaphorFrequency:     0.02,
		SimileFrequency:       0.015,
		AlliterationFrequency: 0.008,
		RepetitionPatterns:    0.03,
	}
}
