package handlers

// HandlerBundle groups the handlers of every service; a process fills in the ones it runs.
type HandlerBundle struct {
	User         *UserHandler
	Master       *MasterHandler
	Booking      *BookingHandler
	Confirmation *ConfirmationHandler
	History      *HistoryHandler
	Relay        *RelayHandler
}
