package domain

// Clamp01 limits v to the [0, 1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates linearly between a and b. t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	t = Clamp01(t)
	return a + (b-a)*t
}

// FadeProgress is the fraction of a fade completed after elapsed seconds.
func FadeProgress(elapsed float64) float64 {
	return Clamp01(elapsed / FadeSeconds)
}

// FadeInOpacity is the overlay opacity elapsed seconds into a fade-in.
func FadeInOpacity(elapsed float64) float64 {
	return 1 - FadeProgress(elapsed)
}

// FadeOutOpacity is the overlay opacity elapsed seconds into a fade-out.
func FadeOutOpacity(elapsed float64) float64 {
	return FadeProgress(elapsed)
}

// FadeOutVolume is the audio volume elapsed seconds into a fade-out that started at startVolume.
func FadeOutVolume(startVolume, elapsed float64) float64 {
	return Lerp(startVolume, 0, FadeProgress(elapsed))
}
