package merge

import "sort"

// Size boundaries for the processing-order buckets.
const (
	smallFileLimit  = 100 * 1024 * 1024  // < 100MB
	mediumFileLimit = 1000 * 1024 * 1024 // < 1GB
)

// OptimizeOrder returns the input paths ordered for processing: files are
// partitioned into large (>= 1GB), medium and small buckets, largest first
// within each, and the large bucket is emitted first. Front-loading the big
// files while memory is still fresh keeps the dedup set from starving later
// large files of capacity. Pure function, no side effects.
func OptimizeOrder(files []FileDescriptor) []string {
	sorted := make([]FileDescriptor, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Size > sorted[j].Size
	})

	var small, medium, large []string
	for _, f := range sorted {
		switch {
		case f.Size < smallFileLimit:
			small = append(small, f.Path)
		case f.Size < mediumFileLimit:
			medium = append(medium, f.Path)
		default:
			large = append(large, f.Path)
		}
	}

	ordered := make([]string, 0, len(sorted))
	ordered = append(ordered, large...)
	ordered = append(ordered, medium...)
	ordered = append(ordered, small...)
	return ordered
}
