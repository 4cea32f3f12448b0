package session

// EventKind identifies which lifecycle exchange an engine event refers
// to.
type EventKind uint8

const (
	// EventBootstrap covers the bootstrap exchange.
	EventBootstrap EventKind = iota

	// EventRegistration covers the initial registration exchange.
	EventRegistration

	// EventRegistrationUpdate covers a registration-update exchange.
	EventRegistrationUpdate

	// EventDeregistration covers the deregistration exchange.
	EventDeregistration

	// EventAuthentication covers transport authentication (the DTLS
	// handshake).
	EventAuthentication

	// EventDTLSResume covers an abbreviated DTLS session resumption.
	EventDTLSResume

	// EventSession covers generic session-level notifications that do
	// not belong to a specific exchange.
	EventSession
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventBootstrap:
		return "BOOTSTRAP"
	case EventRegistration:
		return "REGISTRATION"
	case EventRegistrationUpdate:
		return "REGISTRATION_UPDATE"
	case EventDeregistration:
		return "DEREGISTRATION"
	case EventAuthentication:
		return "AUTHENTICATION"
	case EventDTLSResume:
		return "DTLS_RESUME"
	case EventSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// EventStatus is the outcome phase of an engine lifecycle event.
type EventStatus uint8

const (
	// EventStarted means the exchange has begun.
	EventStarted EventStatus = iota

	// EventSucceeded means the exchange completed successfully.
	EventSucceeded

	// EventFailed means the exchange failed.
	EventFailed
)

// String returns the event status name.
func (s EventStatus) String() string {
	switch s {
	case EventStarted:
		return "STARTED"
	case EventSucceeded:
		return "SUCCEEDED"
	case EventFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// AppEvent is a tagged event delivered to the application status
// callback.
type AppEvent uint8

const (
	// AppEventInitialized reports that the session layer is set up and
	// the transport is open.
	AppEventInitialized AppEvent = iota

	// AppEventAgreementRequested reports that the server asked for
	// user agreement before proceeding.
	AppEventAgreementRequested

	// AppEventAuthenticationStarted reports that transport
	// authentication has begun.
	AppEventAuthenticationStarted

	// AppEventAuthenticationFailed reports that transport
	// authentication failed.
	AppEventAuthenticationFailed

	// AppEventSessionStarted reports that a protocol session has begun.
	AppEventSessionStarted

	// AppEventSessionFailed reports that the session failed. The state
	// machine has already been moved back to a restartable state.
	AppEventSessionFailed

	// AppEventSessionFinished reports an orderly session end.
	AppEventSessionFinished

	// AppEventDownloadProgress reports package download progress.
	AppEventDownloadProgress

	// AppEventDownloadFinished reports a completed package download.
	AppEventDownloadFinished

	// AppEventDownloadFailed reports a failed package download.
	AppEventDownloadFailed

	// AppEventCertificationOK reports a package that passed
	// certification checks.
	AppEventCertificationOK

	// AppEventCertificationNotOK reports a package that failed
	// certification checks.
	AppEventCertificationNotOK

	// AppEventUpdateStarted reports that a firmware update has begun.
	AppEventUpdateStarted

	// AppEventUpdateFailed reports a failed firmware update.
	AppEventUpdateFailed

	// AppEventUpdateFinished reports a completed firmware update.
	AppEventUpdateFinished

	// AppEventFallbackStarted reports that the client fell back to the
	// previous firmware image.
	AppEventFallbackStarted

	// AppEventDownloadProgressPercent reports download progress as a
	// percentage.
	AppEventDownloadProgressPercent

	// AppEventSessionTypeBootstrap reports that the session now in
	// progress is a bootstrap session.
	AppEventSessionTypeBootstrap

	// AppEventSessionTypeDeviceManagement reports that the session now
	// in progress is a device-management session.
	AppEventSessionTypeDeviceManagement
)

// String returns the application event name.
func (e AppEvent) String() string {
	switch e {
	case AppEventInitialized:
		return "INITIALIZED"
	case AppEventAgreementRequested:
		return "AGREEMENT_REQUESTED"
	case AppEventAuthenticationStarted:
		return "AUTHENTICATION_STARTED"
	case AppEventAuthenticationFailed:
		return "AUTHENTICATION_FAILED"
	case AppEventSessionStarted:
		return "SESSION_STARTED"
	case AppEventSessionFailed:
		return "SESSION_FAILED"
	case AppEventSessionFinished:
		return "SESSION_FINISHED"
	case AppEventDownloadProgress:
		return "DOWNLOAD_PROGRESS"
	case AppEventDownloadFinished:
		return "DOWNLOAD_FINISHED"
	case AppEventDownloadFailed:
		return "DOWNLOAD_FAILED"
	case AppEventCertificationOK:
		return "CERTIFICATION_OK"
	case AppEventCertificationNotOK:
		return "CERTIFICATION_NOT_OK"
	case AppEventUpdateStarted:
		return "UPDATE_STARTED"
	case AppEventUpdateFailed:
		return "UPDATE_FAILED"
	case AppEventUpdateFinished:
		return "UPDATE_FINISHED"
	case AppEventFallbackStarted:
		return "FALLBACK_STARTED"
	case AppEventDownloadProgressPercent:
		return "DOWNLOAD_PROGRESS_PERCENT"
	case AppEventSessionTypeBootstrap:
		return "SESSION_TYPE_BOOTSTRAP"
	case AppEventSessionTypeDeviceManagement:
		return "SESSION_TYPE_DEVICE_MANAGEMENT"
	default:
		return "UNKNOWN"
	}
}

// StatusCallback receives application events. It is invoked from the
// session's logical flow of control and must not block or call back
// into the Manager other than through query methods.
type StatusCallback func(event AppEvent)
