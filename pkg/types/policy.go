package types

// Policy holds the link toggles configured for one instance.
type Policy struct {
	// AllowLink permits linking into the instance at all.
	AllowLink bool
	// AllowLinkWithoutConfirmation skips the interactive double confirmation.
	AllowLinkWithoutConfirmation bool
}
