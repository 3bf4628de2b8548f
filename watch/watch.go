//The interface to watch for changes
//go:build !i18nops_runtime_only

// Package watch contains the watch.Execute function called by the main command line interface
package watch

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dakusan/i18nops/execute"
	"github.com/fsnotify/fsnotify"
)

// ReturnData is the data that is returned through a channel from watch.Execute when it processes files
type ReturnData struct {
	Type    ReturnType
	Files   execute.ProcessedFileList //Only on ReturnType=WR_ProcessedDirectory or WR_ProcessedFile
	Err     error                     //Only on ReturnType=WR_ProcessedDirectory or WR_ProcessedFile or WR_ErroredOut
	Message string                    //Only on ReturnType=WR_Message or WR_ProcessedFile
}

type ReturnType int

//goland:noinspection GoSnakeCaseUsage
const (
	WR_Message            ReturnType = iota //An informative message is being sent
	WR_ProcessedDirectory                   //Directory() was called due to initialization or default locale update
	WR_ProcessedFile                        //A single file was updated. Message contains the filename. Error is filled on error.
	WR_ErroredOut                           //The watch could not be started or has closed
	WR_CloseRequested                       //Process close was requested
)

// Execute processes all files in the InputPath directory.
//
// It continually watches the directory for relevant changes in its own goroutine, and only processes and updates the necessary files when a change is detected.
func Execute(settings *execute.ProcessSettings) <-chan ReturnData {
	ret := make(chan ReturnData, 10)
	go execWatchReal(settings, ret)
	return ret
}

func execWatchReal(settings *execute.ProcessSettings, ret chan<- ReturnData) {
	sendMessage := func(message string) {
		ret <- ReturnData{WR_Message, nil, nil, message}
	}

	//Create the watcher
	var watcher *fsnotify.Watcher
	if _watcher, err := fsnotify.NewWatcher(); err != nil {
		ret <- ReturnData{WR_ErroredOut, nil, err, ""}
		return
	} else {
		watcher = _watcher
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(settings.InputPath); err != nil {
		ret <- ReturnData{WR_ErroredOut, nil, err, ""}
		return
	}

	//Run Directory() once before watching
	{
		files, err := settings.Directory()
		ret <- ReturnData{WR_ProcessedDirectory, files, err, ""}
	}
	inputDir := filepath.Clean(settings.InputPath)

	//A file is processed once no further events arrived for it during $settleTime
	const settleTime = time.Millisecond * 100
	pending := make(map[string]*time.Timer)
	var pendingMutex sync.Mutex
	schedule := func(event fsnotify.Event, localeIdent, fName string) {
		pendingMutex.Lock()
		defer pendingMutex.Unlock()
		if t, ok := pending[event.Name]; ok {
			t.Stop()
		}
		pending[event.Name] = time.AfterFunc(settleTime, func() {
			pendingMutex.Lock()
			delete(pending, event.Name)
			pendingMutex.Unlock()

			sendMessage(fmt.Sprintf("%s: Change (%s) occurred on “%s”", time.Now().Format("2006-01-02 15:04:05"), event.Op.String(), fName))
			ret <- processFile(localeIdent, fName, settings)
		})
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdownSignal)

	sendMessage("Initiating watch")
	for {
		select {
		case err, ok := <-watcher.Errors:
			if !ok {
				ret <- ReturnData{WR_ErroredOut, nil, errors.New("Watcher was closed out"), ""}
				return
			}
			sendMessage("Watcher sent an error: " + err.Error())
		case event, ok := <-watcher.Events:
			if !ok {
				ret <- ReturnData{WR_ErroredOut, nil, errors.New("Watcher was closed out"), ""}
				return
			}

			if filepath.Dir(event.Name) != inputDir {
				sendMessage(fmt.Sprintf("Changed file “%s” was not in the input path “%s”", event.Name, settings.InputPath))
				continue
			} else if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue //Renames and removals leave nothing to compile
			}
			fName := filepath.Base(event.Name)
			if localeIdent, isMessageFile := messageFileLocale(fName); isMessageFile {
				schedule(event, localeIdent, fName)
			}
		case <-shutdownSignal:
			ret <- ReturnData{WR_CloseRequested, nil, nil, ""}
			return
		}
	}
}

// Returns the locale identifier of a message file name
func messageFileLocale(fName string) (string, bool) {
	dotLoc := strings.LastIndexByte(fName, '.')
	if dotLoc <= 0 {
		return "", false
	}
	if ext := strings.ToLower(fName[dotLoc+1:]); ext != execute.YAML_Extension && ext != execute.JSON_Extension {
		return "", false
	}
	return fName[0:dotLoc], true
}

func processFile(localeIdent, fName string, settings *execute.ProcessSettings) ReturnData {
	//The other locales are checked against the default one, so they all need processing
	if localeIdent == settings.DefaultLocale {
		files, err := settings.Directory()
		return ReturnData{WR_ProcessedDirectory, files, err, ""}
	}

	files, err := settings.File(localeIdent)
	return ReturnData{WR_ProcessedFile, files, err, fName}
}
