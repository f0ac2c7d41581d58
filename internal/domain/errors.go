package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrAccountNotFound = errors.New("Account not found")
var ErrTransactionsDisabled = errors.New("Transactions are disabled")
var ErrInvalidAmount = errors.New("Amount must be greater than zero")
var ErrInsufficientFunds = errors.New("Insufficient funds")
var ErrLoanLimitExceeded = errors.New("Loan limit exceeded")
var ErrInvalidRecipient = errors.New("Recipient account is invalid")
var ErrInvalidLoanState = errors.New("Loan is not in a payable state")
