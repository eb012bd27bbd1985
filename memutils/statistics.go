package memutils

import "math"

// Statistics summarizes the resources tracked by a provider
type Statistics struct {
	ResourceCount  int
	AllocatedCount int
	ResourceBytes  int
}

func (s *Statistics) Clear() {
	s.ResourceCount = 0
	s.AllocatedCount = 0
	s.ResourceBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.ResourceCount += other.ResourceCount
	s.AllocatedCount += other.AllocatedCount
	s.ResourceBytes += other.ResourceBytes
}

// DetailedStatistics adds usage counts and size extremes to Statistics
type DetailedStatistics struct {
	Statistics
	ReadLockedCount  int
	WriteLockedCount int
	ExportedCount    int
	ImportedCount    int
	LostCount        int
	PendingDeletion  int
	ResourceSizeMin  int
	ResourceSizeMax  int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.ReadLockedCount = 0
	s.WriteLockedCount = 0
	s.ExportedCount = 0
	s.ImportedCount = 0
	s.LostCount = 0
	s.PendingDeletion = 0
	s.ResourceSizeMin = math.MaxInt
	s.ResourceSizeMax = 0
}

// AddResource records a resource occupying size bytes. Unallocated resources are counted
// but contribute no bytes.
func (s *DetailedStatistics) AddResource(size int, allocated bool) {
	s.ResourceCount++
	if !allocated {
		return
	}

	s.AllocatedCount++
	s.ResourceBytes += size

	if size < s.ResourceSizeMin {
		s.ResourceSizeMin = size
	}

	if size > s.ResourceSizeMax {
		s.ResourceSizeMax = size
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.ReadLockedCount += other.ReadLockedCount
	s.WriteLockedCount += other.WriteLockedCount
	s.ExportedCount += other.ExportedCount
	s.ImportedCount += other.ImportedCount
	s.LostCount += other.LostCount
	s.PendingDeletion += other.PendingDeletion

	if other.ResourceSizeMin < s.ResourceSizeMin {
		s.ResourceSizeMin = other.ResourceSizeMin
	}

	if other.ResourceSizeMax > s.ResourceSizeMax {
		s.ResourceSizeMax = other.ResourceSizeMax
	}
}
