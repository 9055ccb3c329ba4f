package ecs

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	TotalEntityCount   int
	ArchetypeCount     int
	PendingCommands    int
	ResourceCount      int
	ResourceTypes      []string
	ArchetypeBreakdown []ArchetypeStats
}

// ArchetypeStats describes one archetype table.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats summarizes the storage. Archetypes are listed in creation order.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		TotalEntityCount: s.EntityCount(),
		ArchetypeCount:   len(s.ordered),
		PendingCommands:  s.commands.Pending(),
		ResourceCount:    s.resources.Len(),
	}

	for _, t := range s.resources.Types() {
		stats.ResourceTypes = append(stats.ResourceTypes, t.String())
	}

	for _, archetype := range s.ordered {
		names := make([]string, len(archetype.types))
		for i, t := range archetype.types {
			names[i] = t.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    archetype.Len(),
		})
	}

	return stats
}
