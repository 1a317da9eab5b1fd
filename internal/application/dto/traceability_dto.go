package dto

// PartyDTO actor de origen o destino de un lote.
type PartyDTO struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// CreateBatchRequest alta de un lote de cosecha.
type CreateBatchRequest struct {
	ProductType    string   `json:"product_type"`
	Quantity       int      `json:"quantity"`
	Origin         PartyDTO `json:"origin"`
	Destination    PartyDTO `json:"destination"`
	Quality        string   `json:"quality"`
	Certifications []string `json:"certifications"`
}

// AddCheckpointRequest anexa un checkpoint a la cadena de un lote.
// Timestamp opcional en epoch ms; si falta se usa el instante actual.
type AddCheckpointRequest struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
	Timestamp   *int64  `json:"timestamp,omitempty"`
}

// JourneyEntry entrada del reporte de trayecto, con timestamp ya en ISO-8601.
// La conversión epoch ms -> ISO ocurre solo en esta frontera de lectura.
type JourneyEntry struct {
	Location    string  `json:"location"`
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperature"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes,omitempty"`
}

// BatchReport reporte de trazabilidad de solo lectura de un lote.
type BatchReport struct {
	BatchNumber     string         `json:"batch_number"`
	ProductType     string         `json:"product_type"`
	Quantity        int            `json:"quantity"`
	OriginName      string         `json:"origin_name"`
	DestinationName string         `json:"destination_name"`
	Quality         string         `json:"quality"`
	Certifications  []string       `json:"certifications"`
	Status          string         `json:"status"`
	CurrentLocation string         `json:"current_location"`
	Journey         []JourneyEntry `json:"journey"`
}
