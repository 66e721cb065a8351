// Package deprecation reports use of entry points kept only for backward compatibility.
//
// A Notifier writes a non-fatal warning for every call. When configured with the
// running engine version, notices for APIs deprecated in an older major release
// are escalated to error level. Notices never abort execution.
//
//	n := deprecation.New(log, deprecation.WithCurrentVersion("1.9"))
//	n.Notice(ctx, "Session::offsetGet has been deprecated.", "1.9")
package deprecation
