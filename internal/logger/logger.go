package logger

import (
	"os"
	"path/filepath"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/send"
	"github.com/pkg/errors"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/bench.txt"

// Setup routes grip to the console and, when path is non-empty, to a plain
// append-only file as well. levelName is one of grip's level names
// ("debug", "info", "warning", ...); unknown names fall back to grip's default.
func Setup(name, levelName, path string) error {
	info := send.LevelInfo{Default: level.Info, Threshold: level.FromString(levelName)}

	native, err := send.NewNativeLogger(name, info)
	if err != nil {
		return errors.Wrap(err, "creating console logger")
	}
	senders := []send.Sender{native}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return errors.Wrapf(err, "creating log directory for %s", path)
		}
		file, err := send.NewPlainFileLogger(name, path, info)
		if err != nil {
			return errors.Wrapf(err, "opening log file %s", path)
		}
		senders = append(senders, file)
	}

	grip.SetName(name)
	return errors.Wrap(grip.SetSender(send.NewConfiguredMultiSender(senders...)), "installing log sender")
}
