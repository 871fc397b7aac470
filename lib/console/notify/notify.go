package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

// Notifier поверхность уведомлений консоли
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Terminal цветной вывод в терминал
type Terminal struct {
	out     io.Writer
	success *color.Color
	failure *color.Color
}

func NewTerminal(out io.Writer, noColor bool) *Terminal {
	success := color.New(color.FgGreen, color.Bold)
	failure := color.New(color.FgRed, color.Bold)
	if noColor {
		success.DisableColor()
		failure.DisableColor()
	}
	return &Terminal{out: out, success: success, failure: failure}
}

func (t *Terminal) Success(msg string) {
	fmt.Fprintln(t.out, t.success.Sprint("✔ ")+msg)
}

func (t *Terminal) Error(msg string) {
	fmt.Fprintln(t.out, t.failure.Sprint("✖ ")+msg)
}

// Log уведомления в лог, для неинтерактивного запуска
type Log struct {
	Logger *log.Entry
}

func (l Log) Success(msg string) {
	l.Logger.Info(msg)
}

func (l Log) Error(msg string) {
	l.Logger.Error(msg)
}

// Recorder запоминает уведомления
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = nil
	r.Errors = nil
}
