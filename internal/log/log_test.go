package log

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	InitWriter(&buf)
	defaultLogger.now = func() time.Time { return time.Date(2026, 10, 14, 10, 45, 0, 0, time.UTC) }
	t.Cleanup(func() { defaultLogger = nil })
	return &buf
}

func TestLog_Format(t *testing.T) {
	buf := captureLog(t)

	Info(CatWizard, "advanced", "step", 2)
	ErrorErr(CatExport, "export failed", errors.New("disk full"), "id", "JAS26-10821")
	Warn(CatUI, "orphan", "key")
	Debug(CatConfig, "empty", "path", "")

	require.Equal(t, ""+
		"2026-10-14T10:45:00 [INFO] [wizard] advanced step=2\n"+
		"2026-10-14T10:45:00 [ERROR] [export] export failed id=JAS26-10821 error=\"disk full\"\n"+
		"2026-10-14T10:45:00 [WARN] [ui] orphan key=<missing>\n"+
		"2026-10-14T10:45:00 [DEBUG] [config] empty path=\"\"\n",
		buf.String())
}

func TestLog_ErrorErrNil(t *testing.T) {
	buf := captureLog(t)
	ErrorErr(CatDB, "odd", nil)
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	buf := captureLog(t)

	SetMinLevel(LevelWarn)
	Debug(CatDB, "hidden")
	Warn(CatDB, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	SetEnabled(false)
	Error(CatDB, "muted")
	require.NotContains(t, buf.String(), "muted")
}

func TestLog_NoLoggerIsSilent(t *testing.T) {
	defaultLogger = nil
	require.NotPanics(t, func() { Info(CatConfig, "nothing") })
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "UNKNOWN", Level(9).String())
}

func TestInitWithTeaLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := InitWithTeaLog(path, "jasreg")
	require.NoError(t, err)
	t.Cleanup(func() { defaultLogger = nil })

	Info(CatConfig, "written")
	cleanup()
	require.FileExists(t, path)
}
