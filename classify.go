package hotspot

// Classify flags every observation whose normalized value is at or above the
// threshold. points must come from Transform(obs); each point's Index picks
// the observation it describes. The result is in input order with one entry
// per observation.
func Classify(obs []Observation, points []CRFDPoint, t Threshold) []HotspotResult {
	results := make([]HotspotResult, len(obs))
	for _, p := range points {
		results[p.Index] = HotspotResult{
			Observation: obs[p.Index],
			X:           p.X,
			Y:           p.Y,
			IsHotspot:   p.X >= t.XStar,
		}
	}
	return results
}

// Reclassify recomputes the hotspot flags of already classified results
// against t. Reclassifying with the threshold that produced the results
// leaves every flag unchanged.
func Reclassify(results []HotspotResult, t Threshold) []HotspotResult {
	out := make([]HotspotResult, len(results))
	for i, r := range results {
		r.IsHotspot = r.X >= t.XStar
		out[i] = r
	}
	return out
}

// Members returns the hotspot members of results, in order.
func Members(results []HotspotResult) []HotspotResult {
	var members []HotspotResult
	for _, r := range results {
		if r.IsHotspot {
			members = append(members, r)
		}
	}
	return members
}
