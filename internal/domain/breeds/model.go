package breeds

// Breed es una entrada del catálogo de razas. El id es el código corto del
// catálogo externo (p.ej. "beng", "sibe").
type Breed struct {
	ID          string
	Name        string
	Origin      string
	Description string
	Temperament string

	WikipediaURL string
	ImageURL     string
}

// SearchFilter: coincidencia parcial, sin distinguir mayúsculas. Los campos
// vacíos no filtran; si vienen los dos, se exigen ambos.
type SearchFilter struct {
	Name   string
	Origin string
}
