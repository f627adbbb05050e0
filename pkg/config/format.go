package config

// FormatStepID formats a step identifier based on the given format.
// Falls back to ID if name is empty.
func FormatStepID(format StepFormat, stepID, stepName string) string {
	if stepName == "" {
		return stepID
	}

	switch format {
	case StepFormatName:
		return stepName
	case StepFormatCombined:
		return stepID + "/" + stepName
	case StepFormatID:
		return stepID
	default:
		return stepID
	}
}
