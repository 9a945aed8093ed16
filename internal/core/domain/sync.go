package domain

// StoreState is the observable state of the synchronization store.
type StoreState struct {
	Loading           bool   `json:"loading"`
	Error             string `json:"error,omitempty"`
	IsInitialized     bool   `json:"isInitialized"`
	DatabaseReady     bool   `json:"databaseReady"`
	Subscribed        bool   `json:"subscribed"`
	Page              int    `json:"page"`
	AllInvoicesLoaded bool   `json:"allInvoicesLoaded"`
	IsLoadingMore     bool   `json:"isLoadingMore"`
	ClientCount       int    `json:"clientCount"`
	InvoiceCount      int    `json:"invoiceCount"`
}
