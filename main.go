//Command line interface
//go:build !i18nops_runtime_only

/*
Package main is the command line interface that compiles i18n message files into instruction catalogs for the “i18n” package runtime.

i18nops [Mode] [flags]:

Modes (Mutually exclusive):

	 Directory mode: [No arguments given]
	    Processes all files in the “InputPath” directory
	    Can be used in conjunction with -w
	 File mode: [arg1=locale identifier]
	    Processes a single message file and the default locale’s message file
	    Can be used in conjunction with -s

	-s, --single-file               Mode=File. The default locale will not be processed, so block names are not checked against it
	-w, --watch                     Mode=Directory. Continually watches the directory for relevant changes
	                                Only processes and updates the necessary files when a change is detected
	    --create-settings           Create the default settings-i18nops.json file
	-h, --help                      This help prompt

File flags (Modify how non-message-files are interacted with):

	-c, --output-compiled[=false]   Output the compiled catalog files (default true)
	-b, --go-blocks[=false]         Output the go block names file when processing the default locale (default true)
	-i, --ignore-timestamps         Always read from message files [ignore compiled files even if they are newer]

The following are for overriding settings from settings-i18nops.json. If not given, the values from the settings file will be used:

	-l, --default-locale string     The identifier for the default locale
	-p, --input-path string         The directory with the message files
	-g, --go-path string            The directory to output the generated go block names files to
	                                The file is in the format “$Locale/Blocks.go”
	-o, --output-path string        The directory to output the compiled catalog files to
	                                Each locale gets its own .i18n.json or .i18n.json.gz (gzip compressed) file
	-n, --go-package-name string    The package name of the generated go block names file
	-m, --compress-compiled         Whether the compiled catalog files are saved as .i18n.json or .i18n.json.gz (gzip compressed)
	-j, --allow-json-comma          If JSON files can have trailing commas. If true, a sanitization process is ran over the JSON

Command line display modifiers:

	-t, --table[=false]             Output an ascii table of the processed locales and their flags (default true)
	-v, --verbose                   Output a list of processed files, their processing flags, and their catalog sizes
	-x, --warnings[=false]          Output a list of warnings from processing the message files (default true)
	-d, --debug                     Output the instructions of every compiled block
*/
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/dakusan/i18nops/execute"
	"github.com/dakusan/i18nops/i18n"
	"github.com/dakusan/i18nops/watch"
	"github.com/spf13/pflag"
)

func main() {
	if !mainWrapper() {
		os.Exit(1)
	}
}

type displayFlags struct {
	table, verbose, warnings, debug bool
}

// Returns if successful
func mainWrapper() bool {
	//Mode flags
	flagSingleFile := pflag.BoolP("single-file", "s", false, "Mode=File. The default locale will not be processed, so block names are not checked against it")
	flagWatchFiles := pflag.BoolP("watch", "w", false, "Mode=Directory. Continually watches the directory for relevant changes\nOnly processes and updates the necessary files when a change is detected")
	flagCreateSettingsFile := pflag.Bool("create-settings", false, "Create the default "+execute.SettingsFileName+" file")
	flagShowHelp := pflag.BoolP("help", "h", false, "This help prompt")

	//Settings receiver with defaults
	settings := execute.ProcessSettings{
		DefaultLocale:      "en-US",
		InputPath:          "messages",
		GoOutputPath:       "blocks",
		CompiledOutputPath: "compiled",
		CompressCompiled:   true,
		OutputGoBlocks:     true,
		OutputCompiled:     true,
	}

	//Settings overrides
	type settingInfo struct {
		name, fixedName string
		flagValue       any
		settingPointer  any
	}
	settingOverrides := make(map[string]settingInfo)
	upperCaseRegex := regexp.MustCompile(`[a-z][A-Z]`)
	addSetting := func(shortLetter byte, name string, settingPointer any, usageText string) {
		//Lower case name and add dash where there were upper case letters
		const upperToLowerOrOp = 32
		fixedName := []byte(name)
		fixedName[0] = fixedName[0] | upperToLowerOrOp
		fixedName = upperCaseRegex.ReplaceAllFunc(fixedName, func(b []byte) []byte {
			return []byte(fmt.Sprintf("%c-%c", b[0], b[1]|upperToLowerOrOp))
		})
		sFixedName := string(fixedName)

		myInfo := settingInfo{name, sFixedName, nil, settingPointer}
		switch settingPointer.(type) {
		case *bool:
			myInfo.flagValue = pflag.BoolP(sFixedName, string(shortLetter), false, usageText)
		case *string:
			myInfo.flagValue = pflag.StringP(sFixedName, string(shortLetter), "", usageText)
		default:
			panic("Unreachable code")
		}

		settingOverrides[name] = myInfo
	}

	//File flags
	addSetting('c', "OutputCompiled", &settings.OutputCompiled, "Output the compiled catalog files")
	addSetting('b', "GoBlocks", &settings.OutputGoBlocks, "Output the go block names file when processing the default locale")
	addSetting('i', "IgnoreTimestamps", &settings.IgnoreTimestamps, "Always read from message files [ignore compiled files even if they are newer]")

	//Settings flags
	addSetting('l', "DefaultLocale", &settings.DefaultLocale, "The identifier for the default locale")
	addSetting('p', "InputPath", &settings.InputPath, "The directory with the message files")
	addSetting('g', "GoPath", &settings.GoOutputPath, "The directory to output the generated go block names files to\nThe file is in the format “$Locale/"+execute.GoBlocksFileName+"”")
	addSetting('o', "OutputPath", &settings.CompiledOutputPath, "The directory to output the compiled catalog files to\nEach locale gets its own "+i18n.CatalogExtension+" or "+i18n.CatalogExtensionCompressed+" (gzip compressed) file")
	addSetting('n', "GoPackageName", &settings.GoPackageName, "The package name of the generated go block names file")
	addSetting('m', "CompressCompiled", &settings.CompressCompiled, "Whether the compiled catalog files are saved as "+i18n.CatalogExtension+" or "+i18n.CatalogExtensionCompressed+" (gzip compressed)")
	addSetting('j', "AllowJsonComma", &settings.AllowJSONTrailingComma, "If JSON files can have trailing commas. If true, a sanitization process is ran over the JSON")

	//Output flags
	var display displayFlags
	pflag.BoolVarP(&display.table, "table", "t", true, "Output an ascii table of the processed locales and their flags")
	pflag.BoolVarP(&display.verbose, "verbose", "v", false, "Output a list of processed files, their processing flags, and their catalog sizes")
	pflag.BoolVarP(&display.warnings, "warnings", "x", true, "Output a list of warnings from processing the message files")
	pflag.BoolVarP(&display.debug, "debug", "d", false, "Output the instructions of every compiled block")
	for _, flagName := range []string{"go-blocks", "output-compiled", "table", "warnings"} {
		pflag.Lookup(flagName).NoOptDefVal = "false"
		pflag.Lookup(flagName).DefValue = "true"
	}

	//Set up help prompt
	stdErr := func(str string) bool {
		_, _ = fmt.Fprintln(os.Stderr, str)
		return false
	}
	pflag.CommandLine.SortFlags = false
	pflag.Usage = func() {
		//Add title above a flag
		flagsSection := pflag.CommandLine.FlagUsages()
		titleFlagSection := func(shortLetter byte, titleLine string, args ...interface{}) {
			flagsSection = regexp.MustCompile(`(?m)^\s*-`+string(shortLetter)+`,`).ReplaceAllStringFunc(flagsSection, func(str string) string {
				return fmt.Sprintf("\n"+titleLine+"\n%s", append(args, str)...)
			})
		}

		//Add the titles
		titleFlagSection('c', "File flags (Modify how non-message-files are interacted with):")
		titleFlagSection('l', "The following are for overriding settings from %s. If not given, the values from the settings file will be used:", execute.SettingsFileName)
		titleFlagSection('t', "Command line display modifiers:")

		//Modes information
		modesStrings := []string{
			"   Directory mode: [No arguments given]\n      Processes all files in the “InputPath” directory\n      Can be used in conjunction with -w",
			"   File mode: [arg1=locale identifier]\n      Processes a single message file and the default locale’s message file\n      Can be used in conjunction with -s",
		}

		stdErr(fmt.Sprintf(
			"%s [Mode] [flags]:\n\nModes (Mutually exclusive):\n%s\n\n%s",
			regexp.MustCompile(`^.*[/\\]`).ReplaceAllString(os.Args[0], ""),
			strings.Join(modesStrings, "\n"),
			flagsSection,
		))
	}
	pflag.ErrHelp = errors.New("")

	//Run flags parsing
	pflag.Parse()

	if *flagShowHelp {
		pflag.Usage()
		return false
	}

	//If settings file creation is requested
	if *flagCreateSettingsFile {
		var f *os.File
		var err error
		if f, err = os.Create(execute.SettingsFileName); err != nil {
			return stdErr(fmt.Sprintf("Error opening %s: %s", execute.SettingsFileName, err.Error()))
		}
		defer func() { _ = f.Close() }()
		e := json.NewEncoder(f)
		e.SetIndent("", "\t")
		if err := e.Encode(settings); err != nil {
			return stdErr(fmt.Sprintf("Error compiling settings to %s: %s", execute.SettingsFileName, err.Error()))
		}
		return stdErr("Settings file created")
	}

	//Read the settings file
	if settingsText, err := os.ReadFile(execute.SettingsFileName); err != nil {
		return stdErr(fmt.Sprintf("Could not read settings file “%s”: %s", execute.SettingsFileName, err.Error()))
	} else if err := json.Unmarshal(settingsText, &settings); err != nil {
		return stdErr(fmt.Sprintf("Could not read settings file “%s”: %s", execute.SettingsFileName, err.Error()))
	}

	//Read the flags into settings
	for _, s := range settingOverrides {
		if !pflag.Lookup(s.fixedName).Changed {
			continue
		}
		switch v := s.settingPointer.(type) {
		case *bool:
			*v = *s.flagValue.(*bool)
		case *string:
			*v = *s.flagValue.(*string)
		default:
			panic("Unreachable code")
		}
	}

	//Make sure we are in the proper mode for the mode flags
	hasLocaleIdentifier := pflag.NArg() > 0
	if *flagSingleFile && *flagWatchFiles {
		return stdErr("-s -w flags cannot be used together")
	} else if hasLocaleIdentifier && *flagWatchFiles {
		return stdErr("-w flag cannot be used in mode=File")
	} else if !hasLocaleIdentifier && *flagSingleFile {
		return stdErr("-s flag cannot be used in mode=Directory")
	}

	//Run the requested mode
	localeIdentifier := pflag.Arg(0)
	switch {
	case *flagSingleFile:
		if err := settings.FileCompileOnly(localeIdentifier); err != nil {
			fmt.Println(err.Error())
			return false
		}
		fmt.Println("Success")
		return true
	case *flagWatchFiles:
		for msg := range watch.Execute(&settings) {
			switch msg.Type {
			case watch.WR_Message:
				fmt.Println(msg.Message)
			case watch.WR_ProcessedFile:
				fmt.Printf("Processing file “%s”\n", msg.Message)
				outputDirData(msg.Files, msg.Err, display)
			case watch.WR_ProcessedDirectory:
				fmt.Println("Finished processing input directory")
				outputDirData(msg.Files, msg.Err, display)
			case watch.WR_ErroredOut:
				fmt.Printf("Fatal error, exiting: %s\n", msg.Err)
				return false
			case watch.WR_CloseRequested:
				fmt.Println("Exiting watch")
				return true
			}
		}
		panic("Unreachable code")
	case hasLocaleIdentifier:
		files, err := settings.File(localeIdentifier)
		outputDirData(files, err, display)
		return err == nil
	default:
		files, err := settings.Directory()
		outputDirData(files, err, display)
		return err == nil
	}
}

func outputDirData(ret execute.ProcessedFileList, err error, display displayFlags) {
	//Sorted locale identifiers
	locales := make([]string, 0, len(ret))
	for locale := range ret {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	//Output errors
	if err != nil {
		fmt.Println("Errors: " + err.Error())
		for _, locale := range locales {
			if pf := ret[locale]; pf.Err != nil {
				fmt.Printf("Locale “%s”: %s\n", locale, pf.Err.Error())
			}
		}
		fmt.Println(strings.Repeat("-", 80))
	} else {
		fmt.Println("Success")
	}

	//Print the flag table
	if len(ret) != 0 && display.table {
		fmt.Println(strings.Join(ret.CreateFlagTable(), "\n"))
	}

	//Print the processed flags and the catalog sizes in the catalog’s own number format
	if display.verbose {
		for _, locale := range locales {
			pf := ret[locale]
			getFlags := make([]string, 0, len(execute.ProcessedFileFlagNames))
			for _, f := range execute.ProcessedFileFlagNames {
				if pf.Flags&f.Flag != 0 {
					getFlags = append(getFlags, f.Name)
				}
			}
			fmt.Printf("%s: %s\n", locale, strings.Join(getFlags, ", "))

			if pf.Catalog == nil {
				continue
			}
			if l, err := i18n.NewLocale(locale, nil); err == nil {
				numCreate, numUpdate := 0, 0
				for _, b := range pf.Catalog.Blocks {
					numCreate += len(b.Block.Create)
					numUpdate += len(b.Block.Update)
				}
				fmt.Println(l.MessagePrinter().Sprintf("   %d blocks, %d attribute blocks, %d create instructions, %d update instructions",
					len(pf.Catalog.Blocks), len(pf.Catalog.Attributes), numCreate, numUpdate))
			}
		}
	}

	//Print the instructions of every block
	if display.debug {
		for _, locale := range locales {
			pf := ret[locale]
			if pf.Catalog == nil {
				continue
			}
			fmt.Println(strings.Repeat("-", 80))
			fmt.Printf("Locale “%s”:\n", locale)
			for _, b := range pf.Catalog.Blocks {
				fmt.Printf("%s:\n   Create: %s\n   Update: %s\n", b.Name, strings.Join(b.Block.Create.Debug(), "; "), strings.Join(b.Block.Update.Debug(), "; "))
			}
			for _, b := range pf.Catalog.Attributes {
				fmt.Printf("%s:\n   Update: %s\n", b.Name, strings.Join(b.Block.Update.Debug(), "; "))
			}
		}
	}

	//Print warnings
	if display.warnings {
		isFirstWarning := true
		for _, locale := range locales {
			pf := ret[locale]
			if len(pf.Warnings) == 0 {
				continue
			}
			if isFirstWarning {
				fmt.Println(strings.Repeat("-", 80))
				fmt.Println("Warnings:")
				isFirstWarning = false
			}
			fmt.Printf("Locale “%s”: %s\n", locale, strings.Join(pf.Warnings, "\n"))
		}
	}
}
