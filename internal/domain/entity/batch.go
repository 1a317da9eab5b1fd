package entity

// Estados de un lote de trazabilidad.
const (
	BatchStatusInTransit = "in_transit"
	BatchStatusDelivered = "delivered"
	BatchStatusRejected  = "rejected"
)

// BatchParty actor de origen o destino de un lote (centro de cultivo, depuradora, cliente).
type BatchParty struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Checkpoint observación inmutable de ubicación y condición de un lote en un
// instante dado. Una vez anexado nunca se reemplaza.
type Checkpoint struct {
	Location    string  `json:"location"`
	Timestamp   int64   `json:"timestamp"` // epoch milisegundos
	Temperature float64 `json:"temperature"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes,omitempty"`
}

// Batch unidad de trazabilidad de una cosecha.
// Invariantes: Checkpoints es append-only y no vacío tras la creación (se siembra
// con un checkpoint en el origen); CurrentLocation y Status siempre reflejan el
// último checkpoint. Al llegar a un estado terminal (delivered/rejected) el lote
// es inmutable.
type Batch struct {
	ID              string
	BatchNumber     string
	ProductType     string
	Quantity        int
	Origin          BatchParty
	Destination     BatchParty
	Quality         string
	Certifications  []string
	Status          string
	CurrentLocation string
	Checkpoints     []Checkpoint
	CreatedAt       int64 // epoch milisegundos
}

// Terminal indica si el lote ya no admite más checkpoints.
func (b *Batch) Terminal() bool {
	return b.Status == BatchStatusDelivered || b.Status == BatchStatusRejected
}

// ValidBatchStatus indica si s es un estado de lote reconocido.
func ValidBatchStatus(s string) bool {
	switch s {
	case BatchStatusInTransit, BatchStatusDelivered, BatchStatusRejected:
		return true
	}
	return false
}
