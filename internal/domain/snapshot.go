package domain

// Snapshot holds the reference collections for a single optimization call.
// It is read once up front and never written by the optimizer.
type Snapshot struct {
	Ports        []Port            `json:"ports"`
	Trucks       []Truck           `json:"trucks"`
	Markets      []Market          `json:"markets"`
	ColdStorages []ColdStorage     `json:"cold_storages"`
	Lots         []FishLot         `json:"lots"`
	Profiles     []SpoilageProfile `json:"profiles,omitempty"`
}

// Port looks up a port by id.
func (s *Snapshot) Port(id string) (Port, bool) {
	for _, p := range s.Ports {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// LotVolume returns the landed volume of a fish type at a port, if recorded.
func (s *Snapshot) LotVolume(portID string, ft FishType) (float64, bool) {
	total := 0.0
	found := false
	for _, l := range s.Lots {
		if l.PortID == portID && l.FishType == ft {
			total += l.VolumeKg
			found = true
		}
	}
	return total, found
}
