package ports

// OrderDocumentData datos planos que necesita el generador de documentos.
type OrderDocumentData struct {
	OrderID      string
	OrderDate    string
	Status       string
	CustomerName string
	CompanyName  string
	TaxID        string
	Lines        []DocumentLine
	Total        string
}

// DocumentLine línea de documento ya formateada.
type DocumentLine struct {
	Title     string
	ColorCode string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

// DocumentGenerator produce los PDF de pedido (factura y albarán).
type DocumentGenerator interface {
	Invoice(data OrderDocumentData) ([]byte, error)
	DeliveryNote(data OrderDocumentData) ([]byte, error)
}
