// Package xmlutils provides XML-related utility functions used throughout the application.
package xmlutils

// SMSBackup contains the XPath expressions for "SMS Backup & Restore" exports.
// Field paths are relative to a message node.
type SMSBackup struct {
	Message string
	Body    string
	Address string
	Date    string
	Type    string
}

// DefaultSMSBackupXPaths returns the XPath expressions of the Android
// "SMS Backup & Restore" format:
//
//	<smses count="1">
//	  <sms address="VM-HDFCBK" date="1736412000000" type="1" body="..." />
//	</smses>
func DefaultSMSBackupXPaths() SMSBackup {
	return SMSBackup{
		Message: "//sms",
		Body:    "@body",
		Address: "@address",
		Date:    "@date",
		Type:    "@type",
	}
}

// Android message box values of the type attribute
const (
	SMSTypeInbox = "1"
	SMSTypeSent  = "2"
)
