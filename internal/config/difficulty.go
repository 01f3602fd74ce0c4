package config

// DifficultyPreset is a named difficulty level accepted by --difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// PresetForDifficulty maps a difficulty to a board preset name. Unknown
// difficulties map to beginner.
func PresetForDifficulty(d DifficultyPreset) string {
	switch d {
	case DifficultyNormal:
		return PresetIntermediate
	case DifficultyHard:
		return PresetExpert
	default:
		return PresetBeginner
	}
}

// IsDifficulty reports whether s names a known difficulty.
func IsDifficulty(s string) bool {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}
