package locker

import "github.com/iov-one/lexlocker/errors"

// locker takes 1200-1220
var (
	ErrLockerNotFound      = errors.Register(1200, "locker not found")
	ErrNotDepositor        = errors.Register(1201, "not depositor")
	ErrNotLockerParty      = errors.Register(1202, "not locker party")
	ErrNotResolver         = errors.Register(1203, "not resolver")
	ErrInvalidValue        = errors.Register(1204, "wrong attached value")
	ErrAlreadyTerminal     = errors.Register(1205, "locker already terminal")
	ErrTransferFailed      = errors.Register(1206, "transfer failed")
	ErrAwardExceedsCustody = errors.Register(1207, "award exceeds custody")
)
