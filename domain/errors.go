package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
	ErrInvalidAmount  = errors.New("invalid amount")

	// auction creation error
	ErrZeroSellAmount = errors.New("sell amount must be greater than 0")
	ErrSameAssetPair  = errors.New("sell asset and bid asset must be different")

	// gateway error
	ErrTransferFailed  = errors.New("asset transfer failed")
	ErrTokenInfoFailed = errors.New("asset token info query failed")
	ErrRegisterFailed  = errors.New("deposit notification registration failed")
)
