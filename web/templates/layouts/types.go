package layouts

// AppLayoutData is passed to the base layout to configure the page shell.
type AppLayoutData struct {
	Title     string
	Username  string
	ActiveNav string // e.g. "dashboard", "invoices", "parties", "products", "units"
	FlashMsg  string
	FlashKind string // "success", "error"
}

// Page pairs the shell data with the page-specific payload.
type Page struct {
	AppLayoutData
	Data any
}
