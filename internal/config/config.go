package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go DateEntry"
	AppID       = "com.github.tartampluch.go-dateentry"
	LogFileName = "app.log"
	IconFile    = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess   = 0
	ExitCodeError     = 1
	ExitCodeCancelled = 2
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and exported address books.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdRoot    = "go-dateentry"
	CmdGUI     = "gui"
	CmdTUI     = "tui"
	CmdVersion = "version"

	CmdDescRoot    = "Segmented date entry field with a birthday book demo"
	CmdDescGUI     = "Open the desktop birthday book (default)"
	CmdDescTUI     = "Prompt for a single date in the terminal and print it"
	CmdDescVersion = "Show application version and exit"

	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagFormat       = "format"
	FlagSeparator    = "separator"
	FlagLocale       = "locale"
	FlagValue        = "value"
	FlagMin          = "min"
	FlagMax          = "max"
	FlagReturnString = "return-string"
	FlagRequired     = "required"

	FlagDescDebug        = "Enable debug logging to stdout"
	FlagDescConfig       = "Path to a YAML options file"
	FlagDescFormat       = "Segment layout, e.g. DD.MM.YYYY"
	FlagDescSeparator    = "Separator placed between segments"
	FlagDescLocale       = "Locale used for labels and string output"
	FlagDescValue        = "Initial date (YYYY-MM-DD)"
	FlagDescMin          = "Earliest accepted date (YYYY-MM-DD)"
	FlagDescMax          = "Latest accepted date (YYYY-MM-DD)"
	FlagDescReturnString = "Report dates as locale-formatted strings"
	FlagDescRequired     = "Mark the field as required"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Date Entry Defaults
// -----------------------------------------------------------------------------

const (
	DefaultDateFormat = "DD.MM.YYYY"
	DefaultSeparator  = "."
	DefaultLanguage   = "en"

	// PadDigit left-pads partially typed segments in the composed display.
	PadDigit = "0"

	SegmentWidthDay   = 2
	SegmentWidthMonth = 2
	SegmentWidthYear  = 4

	MinDay   = 1
	MaxDay   = 31
	MinMonth = 1
	MaxMonth = 12
	MinYear  = 1
	MaxYear  = 9999
)

// SupportedLanguages defines the fallback list of UI languages (ISO 639-1).
// The embedded locale files are authoritative once loaded.
var SupportedLanguages = []string{"en", "fr", "de"}

// LayoutChoices are the segment orders offered in the settings window.
var LayoutChoices = []string{"DD MM YYYY", "MM DD YYYY", "YYYY MM DD"}

// SeparatorChoices are the separators offered in the settings window.
var SeparatorChoices = []string{".", "/", "-"}

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	// Layouts accepted for external values, bounds and vCard BDAY fields.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// DateFormatDisplay is the output layout used when no locale provides one.
	DateFormatDisplay = "2006-01-02"

	// vCard BDAY values are written in the basic ISO form.
	DateFormatVCard = "20060102"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtICS   = ".ics"

	DefaultExportVCF = "birthdays.vcf"
	DefaultExportICS = "birthdays.ics"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 640
	MainWindowHeight    = 520
	SettingsWindowWidth = 480

	// Preference Keys
	PrefLanguage     = "language"
	PrefDateFormat   = "date_format"
	PrefSeparator    = "separator"
	PrefMin          = "min_date"
	PrefMax          = "max_date"
	PrefReturnString = "return_string"
	PrefLastRun      = "last_run_version"

	// Table Column IDs
	ColIDName = 0
	ColIDDate = 1
	ColIDAge  = 2
	ColCount  = 3

	// Table Layout
	ColWidthName = 260
	ColWidthDate = 140
	ColWidthAge  = 120

	TablePlaceholder  = "Cell Content"
	HeaderPlaceholder = "Header"
	AgeBirth          = "(birth)"

	// Age column: "Birth → 1" and "25 → 26"
	FormatAgeFromBirth  = "%s → %d"
	FormatAgeTransition = "%d → %d"

	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"

	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3
)

// -----------------------------------------------------------------------------
// Terminal Surface
// -----------------------------------------------------------------------------

const (
	TUIHelpMoveKeys   = "←/→"
	TUIHelpMove       = "segment"
	TUIHelpStepKeys   = "↑/↓"
	TUIHelpStep       = "step"
	TUIHelpHomeEnd    = "home/end"
	TUIHelpFirstLast  = "first/last"
	TUIHelpErase      = "erase"
	TUIHelpClear      = "clear"
	TUIHelpPasteKeys  = "ctrl+v"
	TUIHelpPaste      = "paste"
	TUIHelpSubmitKeys = "enter"
	TUIHelpSubmit     = "confirm"
	TUIHelpQuitKeys   = "esc"
	TUIHelpQuit       = "cancel"

	// ANSI 256 colors
	TUIColorAccent  = "62"
	TUIColorMuted   = "241"
	TUIColorError   = "196"
	TUIColorSuccess = "42"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinSettings   = "win_settings_title"
	TKeyLblName       = "lbl_name"
	TKeyLblDate       = "lbl_date"
	TKeyDateLabel     = "date_label" // Requires Format
	TKeyErrDate       = "err_date_invalid"
	TKeyErrDateReq    = "err_date_required"
	TKeyErrNameReq    = "err_name_required"
	TKeyBtnAdd        = "btn_add"
	TKeyBtnImport     = "btn_import"
	TKeyBtnExportVCF  = "btn_export_vcf"
	TKeyBtnExportICS  = "btn_export_ics"
	TKeyBtnSettings   = "btn_settings"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblLayout     = "lbl_layout"
	TKeyLblSeparator  = "lbl_separator"
	TKeyLblMin        = "lbl_min"
	TKeyLblMax        = "lbl_max"
	TKeyHelpBounds    = "help_bounds"
	TKeyLblReturnStr  = "lbl_return_string"
	TKeyLblFooter     = "lbl_footer" // Requires Version (printf)
	TKeyStatusCount   = "status_count"
	TKeyStatusPicked  = "status_picked" // Requires Date
	TKeyStatusNoDate  = "status_no_date"
	TKeyNotifImported = "notif_imported" // Requires Count
	TKeyNotifExported = "notif_exported"

	// Column Headers & Formats
	TKeyColName    = "col_name"
	TKeyColDate    = "col_date"
	TKeyColAge     = "col_age"
	TKeyFormatDate = "format_date_short" // Go layout (e.g., "02/01/2006")
	TKeyAgeBirth   = "age_birth"

	// Event summaries
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go DateEntry//Birthday Book//EN"
	ICalCalName = "Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "go-dateentry"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY    = "BDAY"
	VCardFN      = "FN"
	VCardN       = "N"
	VCardUID     = "UID"
	VCardField   = "VERSION"
	VCardVersion = "4.0"

	FormatUID = "%s-%d@%s"

	// StubVCalendar is the minimal valid iCalendar object written when the
	// book is empty.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	// MaxDecodeErrors stops a vCard import after this many malformed cards in a row.
	MaxDecodeErrors = 16
)

// UIDNamespace seeds deterministic contact UIDs (UUIDv5).
const UIDNamespace = "6f1c3e0a-8a4b-5d2e-9c71-3b2f7e4d9a10"

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrConfigRead    = "failed to read options file"
	ErrConfigParse   = "failed to parse options file"
	ErrConfigInvalid = "invalid options"
	ErrBadBound      = "bound is not a date"
	ErrBoundsOrder   = "min is after max"
	ErrNameEmpty     = "contact name is empty"
	ErrDateInvalid   = "contact date is not a valid date"
	ErrVCardParse    = "failed to parse vCard stream"
	ErrVCardEncode   = "failed to encode vCard"
	ErrICalEncode    = "failed to encode iCalendar data"
	ErrCtxCancelled  = "operation cancelled by context"
	ErrLogFile       = "failed to open log file"
	ErrCacheDir      = "could not determine user cache dir"
	ErrCreateDir     = "could not create app cache dir"
	ErrAppFailed     = "application failed unexpectedly"
	ErrLocalesAccess = "failed to access embedded locales"
	ErrLocaleLoad    = "failed to load locale file"
	ErrLocaleTag     = "unrecognized locale"
	ErrTUIFailed     = "terminal prompt failed"
	ErrClipboard     = "failed to read clipboard"
	ErrInputCanceled = "date input canceled"
	ErrImport        = "import failed"
	ErrExport        = "export failed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackDateLabel    = "Date (%s)"
	FallbackDateInvalid  = "Enter a valid date"
	FallbackDateRequired = "A date is required"
	FallbackNameRequired = "A name is required"
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"
	FallbackName         = "Unknown"

	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgOptionsLoaded   = "Options loaded"
	MsgInputRejected   = "Input rejected"
	MsgDateEmitted     = "Date composed"
	MsgFormatChanged   = "Date format changed"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgContactAdded    = "Contact added"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping card without a full date"
	MsgImportDone      = "vCard import finished"
	MsgExportDone      = "Export finished"
	MsgCalendarWritten = "Calendar generation successful"
	MsgOpenSettings    = "Opening settings window"
	MsgSettingsFocus   = "Settings window already open, requesting focus"
	MsgSavePrefs       = "Saving preferences"
	MsgSorted          = "Contacts sorted"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgTUIResult       = "%s\n"
	MsgTUINoDate       = "no date"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyValue     = "value"
	LogKeyDisplay   = "display"
	LogKeyFormat    = "format"
	LogKeyValid     = "valid"
	LogKeyDate      = "date"
	LogKeyName      = "name"
	LogKeyCount     = "count"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "dates_found"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI     = "ui"
	CompUISet  = "ui_settings"
	CompWidget = "date_entry"
	CompTUI    = "tui"
	CompEngine = "engine"
	CompConfig = "config"
	CompMain   = "main"
	CompI18n   = "i18n"
)
