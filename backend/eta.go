package backend

// DefaultSecondsPerVideo is the per-video estimate used before any video has
// completed and there is no throughput history to extrapolate from.
const DefaultSecondsPerVideo = 180.0

// EstimateETA returns the estimated remaining seconds for the tracked job.
// A backend-supplied estimate always wins. Otherwise, before the first video
// completes the estimate is remaining-videos times a fixed per-video default;
// after that it extrapolates from observed throughput, crediting the
// in-flight video with its fractional completion.
func EstimateETA(p *ProgressState) float64 {
	if p == nil || !p.Active {
		return 0
	}
	if p.EstimatedETA != nil {
		return *p.EstimatedETA
	}

	if p.CompletedVideos <= 0 {
		remaining := p.TotalVideos - p.CurrentIndex
		if remaining < 0 {
			remaining = 0
		}
		return float64(remaining) * DefaultSecondsPerVideo
	}

	perVideo := p.ElapsedSeconds / float64(p.CompletedVideos)
	remaining := float64(p.TotalVideos - p.CompletedVideos)
	if remaining < 0 {
		remaining = 0
	}
	eta := perVideo * remaining
	// Credit progress already made on the video currently running.
	if frac := p.CurrentProgress; frac > 0 && frac <= 1 && remaining > 0 {
		eta -= perVideo * frac
	}
	if eta < 0 {
		eta = 0
	}
	return eta
}
