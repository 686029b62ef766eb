package logger

import (
	"os"
	"path"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

type Settings struct {
	Name     string `json:"name"`
	Level    string `json:"level"`
	Format   string `json:"format"`
	RootPath string `json:"root_path"`
}

var std = logrus.New()

func init() {
	std.SetOutput(os.Stdout)
	std.SetLevel(logrus.DebugLevel)
}

// Init 初始化日志:控制台级别,文件按天切割保留一周
func Init(settings Settings) error {
	level, err := logrus.ParseLevel(settings.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	std.SetLevel(level)
	if settings.Format == "json" {
		std.SetFormatter(&logrus.JSONFormatter{})
	}
	if settings.RootPath == "" {
		return nil
	}

	logName := settings.Name
	if logName == "" {
		logName = "wsproxy"
	}
	writer, err := rotatelogs.New(
		path.Join(settings.RootPath, logName)+".%Y%m%d.log",
		rotatelogs.WithLinkName(path.Join(settings.RootPath, logName+".log")),
		rotatelogs.WithRotationTime(time.Hour*24),
		rotatelogs.WithMaxAge(time.Hour*24*7),
	)
	if err != nil {
		return err
	}
	std.AddHook(lfshook.NewHook(lfshook.WriterMap{
		logrus.TraceLevel: writer,
		logrus.DebugLevel: writer,
		logrus.InfoLevel:  writer,
		logrus.WarnLevel:  writer,
		logrus.ErrorLevel: writer,
		logrus.FatalLevel: writer,
		logrus.PanicLevel: writer,
	}, &logrus.JSONFormatter{}))
	return nil
}

func WithFields(fields Fields) *logrus.Entry {
	return std.WithFields(fields)
}

func WithField(key string, value interface{}) *logrus.Entry {
	return std.WithField(key, value)
}

func WithError(err error) *logrus.Entry {
	return std.WithError(err)
}

func Trace(args ...interface{}) { std.Trace(args...) }
func Debug(args ...interface{}) { std.Debug(args...) }
func Info(args ...interface{})  { std.Info(args...) }
func Warn(args ...interface{})  { std.Warn(args...) }
func Error(args ...interface{}) { std.Error(args...) }
func Fatal(args ...interface{}) { std.Fatal(args...) }

func Tracef(format string, args ...interface{}) { std.Tracef(format, args...) }
func Debugf(format string, args ...interface{}) { std.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { std.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { std.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { std.Errorf(format, args...) }

func Infoln(args ...interface{}) { std.Infoln(args...) }
