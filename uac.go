package adaccounts

import "strconv"

// userAccountControl bits this system reads or writes.
// https://learn.microsoft.com/en-us/windows/win32/adschema/a-useraccountcontrol
const (
	uacAccountDisabled     uint32 = 0x2
	uacLockout             uint32 = 0x10
	uacPasswordNotRequired uint32 = 0x20
	uacNormalAccount       uint32 = 0x200
	uacDontExpirePassword  uint32 = 0x10000
	uacPasswordExpired     uint32 = 0x800000
)

// UAC exposes the User Account Control flags relevant to the account
// lifecycle. Unknown bits are preserved in Raw so writes never clear flags
// this package does not model.
type UAC struct {
	Raw                 uint32
	AccountDisabled     bool
	Lockout             bool
	PasswordNotRequired bool
	NormalAccount       bool
	DontExpirePassword  bool
	PasswordExpired     bool
}

// UACFromUint32 decodes a raw userAccountControl value.
func UACFromUint32(v uint32) UAC {
	return UAC{
		Raw:                 v,
		AccountDisabled:     v&uacAccountDisabled != 0,
		Lockout:             v&uacLockout != 0,
		PasswordNotRequired: v&uacPasswordNotRequired != 0,
		NormalAccount:       v&uacNormalAccount != 0,
		DontExpirePassword:  v&uacDontExpirePassword != 0,
		PasswordExpired:     v&uacPasswordExpired != 0,
	}
}

// WithDisabled returns the raw value with the disable bit ORed in, leaving
// every other bit untouched.
func (u UAC) WithDisabled() uint32 {
	return u.Raw | uacAccountDisabled
}

// newAccountControl is the userAccountControl preset for freshly created
// accounts: normal account, password not required at creation time. Decimal
// value 544.
func newAccountControl() uint32 {
	return uacNormalAccount | uacPasswordNotRequired
}

// parseUAC decodes the string form of the userAccountControl attribute as
// returned by the directory.
func parseUAC(s string) (UAC, error) {
	raw, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return UAC{}, err
	}
	return UACFromUint32(uint32(raw)), nil
}
