package models

// PaymentMethod is how an order is paid. The store only collects on delivery;
// the method is shown at checkout and never sent to the backend.
type PaymentMethod string

const PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"

// PaymentMethods lists the methods offered at checkout
var PaymentMethods = []PaymentMethod{PaymentCashOnDelivery}
