package domain

// SagaState tracks the linear order-creation workflow. There is no branching
// and no compensation: a failure moves to SagaFailed and leaves the side
// effects of completed steps in place.
type SagaState string

const (
	SagaStarted               SagaState = "started"
	SagaCustomerValidated     SagaState = "customer_validated"
	SagaStockReserved         SagaState = "stock_reserved"
	SagaOrderPersisted        SagaState = "order_persisted"
	SagaPaymentRequested      SagaState = "payment_requested"
	SagaConfirmationPublished SagaState = "confirmation_published"
	SagaDone                  SagaState = "done"
	SagaFailed                SagaState = "failed"
)
