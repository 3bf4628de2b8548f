//Primary public processing functions to interact with this library. All of these functions are available through the command line interface
//go:build !i18nops_runtime_only

// Package execute compiles message files into catalogs. Its functions are called by the main command line interface.
package execute

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/dakusan/i18nops/i18n"
	"github.com/dakusan/i18nops/load_compiled"
	"golang.org/x/text/language"
)

var messageFileRegex = regexp.MustCompile(`^[a-z]{2,3}(-[a-z0-9]{2,8})*\.(` + YAML_Extension + `|` + JSON_Extension + `)$`)

// ProcessSettings are taken from $SettingsFileName and are used to automatically read message files and write compiled catalog files and go block files.
//
// Compiled files are read from (and not written to) if their modification timestamps are newer than their message files, unless IgnoreTimestamps=true.
type ProcessSettings struct {
	//The settings from $SettingsFileName
	DefaultLocale          string //The identifier of the default locale. The block names of the other locales are checked against it.
	InputPath              string //The directory with the message files
	GoOutputPath           string //The directory to output the generated go block files to, in the format “$Locale/Blocks.go”. Only the default locale gets one.
	GoPackageName          string //The package name of the generated go block file. Derived from the locale identifier when blank.
	CompiledOutputPath     string //The directory to output the compiled catalog files to. Each locale gets its own .i18n.json or .i18n.json.gz (gzip compressed) file
	CompressCompiled       bool   //Whether the compiled catalog files are saved as .i18n.json or .i18n.json.gz (gzip compressed)
	AllowJSONTrailingComma bool   //If JSON files can have trailing commas. If true, a sanitization process is ran over the JSON that changes the regular expression “,\s*\n\s*}” to just “}”

	//Extra settings added by [command line] flags
	OutputGoBlocks   bool `json:"-"` //Whether to output the go block file
	OutputCompiled   bool `json:"-"` //Whether to output compiled catalog files
	IgnoreTimestamps bool `json:"-"` //Whether to force compiling all files, ignoring timestamps
}

// ProcessedFile is an item in the list of processed files and what was done to/with them.
type ProcessedFile struct {
	LocaleIdentifier string
	InputFileName    string
	Warnings         []string
	Err              error
	Flags            ProcessedFileFlag
	Catalog          *i18n.Catalog //Only filled if Flags.PFF_Catalog_SuccessfullyLoaded
}
type ProcessedFileFlag uint

// ProcessedFileList is a list of ProcessedFiles keyed to their locale identifier
type ProcessedFileList map[string]*ProcessedFile

// Directory processes all files in the InputPath directory. It also returns the resultant catalogs.
//
// No ProcessedFiles are returned if any of the following errors occur: Directory error, locale identity used more than once, default locale not found
func (settings *ProcessSettings) Directory() (ProcessedFileList, error) {
	//Check and update the settings
	if err := settings.checkSettings(); err != nil {
		return nil, err
	}

	//Get a list of the files in the directory
	var d []os.DirEntry
	if _d, err := os.ReadDir(settings.InputPath); err != nil {
		return nil, errors.New("Error reading input path: " + err.Error())
	} else {
		d = _d
	}

	//Get list of files to process
	ret := make(ProcessedFileList)
	for _, f := range d {
		//Only process files whose file extension matches json or yaml
		fName := f.Name()
		if f.IsDir() || !messageFileRegex.MatchString(strings.ToLower(fName)) {
			continue
		}

		//Error on duplicate locale identifier
		localeIdent := fName[0:strings.LastIndexByte(fName, '.')]
		if _, ok := ret[localeIdent]; ok {
			return nil, fmt.Errorf("Locale identity “%s” found again in file: %s", localeIdent, fName)
		}

		//Store the file to process
		ret[localeIdent] = &ProcessedFile{
			LocaleIdentifier: localeIdent,
			InputFileName:    fName,
			Flags:            PFF_Load_NotAttempted | cond(localeIdent == settings.DefaultLocale, PFF_Catalog_IsDefault, 0),
		}
	}

	//Return an error if the default locale was not found
	defaultFile, ok := ret[settings.DefaultLocale]
	if !ok {
		return nil, fmt.Errorf("Default locale “%s” not found", settings.DefaultLocale)
	}

	//Process the default locale. If there is an error with it, stop here
	if defaultFile.Err = settings.processFile(defaultFile); defaultFile.Err != nil {
		return ProcessedFileList{settings.DefaultLocale: defaultFile}, errors.New("Default locale error: " + defaultFile.Err.Error())
	}

	//Process the other locales
	var waitForFiles sync.WaitGroup
	for _, pf := range ret {
		if pf != defaultFile {
			waitForFiles.Add(1)
			go func(pf *ProcessedFile) {
				defer waitForFiles.Done()
				if pf.Err = settings.processFile(pf); pf.Err == nil {
					checkAgainstDefault(pf, defaultFile)
				}
			}(pf)
		}
	}
	waitForFiles.Wait()

	//Return if there are errors
	for _, pf := range ret {
		if pf.Err != nil {
			return ret, errors.New("There were errors while processing files")
		}
	}

	//Return success
	return ret, nil
}

// File processes a single locale and the default locale. It returns the resultant catalogs.
func (settings *ProcessSettings) File(localeIdentifier string) (ProcessedFileList, error) {
	return settings.processLocales(localeIdentifier, true)
}

// FileCompileOnly processes a single message file. The default locale is not processed, so the block names are not checked.
func (settings *ProcessSettings) FileCompileOnly(localeIdentifier string) error {
	_, err := settings.processLocales(localeIdentifier, false)
	return err
}

//------------------Combined processing for the above functions-----------------

func (settings *ProcessSettings) checkSettings() error {
	//Check default locale name
	var errs []string
	if _, err := language.Parse(settings.DefaultLocale); err != nil || !messageFileRegex.MatchString(strings.ToLower(settings.DefaultLocale)+"."+YAML_Extension) {
		errs = append(errs, fmt.Sprintf("Invalid default locale identifier: %s", settings.DefaultLocale))
	}

	//Confirm a directory path is valid and make sure the path ends in a forward slash
	checkDir := func(dirPath, dirName string) string {
		dirPath = addSlash(dirPath)
		if info, err := os.Stat(dirPath); err != nil {
			errs = append(errs, fmt.Sprintf("Directory “%s” at “%s” could not be opened: %s", dirName, dirPath, err.Error()))
		} else if !info.IsDir() {
			errs = append(errs, fmt.Sprintf("Tried to read directory “%s” at “%s” but it is not a directory", dirName, dirPath))
		}
		return dirPath
	}

	//Check input and output directories
	settings.InputPath = checkDir(settings.InputPath, "Input path")
	if settings.OutputGoBlocks {
		settings.GoOutputPath = checkDir(settings.GoOutputPath, "Go blocks path")
	}
	if settings.OutputCompiled {
		settings.CompiledOutputPath = checkDir(settings.CompiledOutputPath, "Compiled output path")
	}

	//Handle if there are errors
	if len(errs) != 0 {
		return errors.New(strings.Join(errs, "\n"))
	}
	return nil
}

// CompiledFileName returns the name of the compiled catalog file of a locale
func (settings *ProcessSettings) CompiledFileName(localeIdentifier string) string {
	return localeIdentifier + cond(settings.CompressCompiled, i18n.CatalogExtensionCompressed, i18n.CatalogExtension)
}

func (settings *ProcessSettings) processFile(pf *ProcessedFile) error {
	//Constants for errors
	type errAction string
	type errFileType string
	//goland:noinspection GoSnakeCaseUsage
	const (
		ea_get       errAction   = "get"
		ea_open      errAction   = "open"
		ea_read      errAction   = "read"
		ea_compile   errAction   = "compile"
		ea_save      errAction   = "save"
		eft_compiled errFileType = "compiled catalog file"
		eft_messages errFileType = "message file"
	)

	defer func() {
		if len(pf.Warnings) != 0 {
			pf.Flags |= PFF_Catalog_HasWarnings
		}
	}()

	//The most common error return
	couldNotErr := func(action errAction, identifier errFileType, filename string, err error) error {
		pf.Flags |= PFF_Error_DuringProcessing
		if err == nil {
			return fmt.Errorf("Could not %s %s “%s”", action, identifier, filename)
		}
		return fmt.Errorf("Could not %s %s “%s”: %s", action, identifier, filename, err.Error())
	}

	//If there is a newer (or equal timestamp) compiled version of the file use it instead
	compiledFileName := settings.CompiledFileName(pf.LocaleIdentifier)
	pf.Flags &= ^PFF_Load_NotAttempted
	if fileInfo, err := os.Stat(settings.InputPath + pf.InputFileName); err != nil || fileInfo.IsDir() {
		pf.Flags |= PFF_Load_NotFound
		return couldNotErr(ea_get, "file info for", pf.InputFileName, nil)
	} else if settings.IgnoreTimestamps {
		//Do not continue if/else chain if we are ignoring timestamps
	} else if compFileInfo, err := os.Stat(settings.CompiledOutputPath + compiledFileName); err == nil && !compFileInfo.IsDir() && !compFileInfo.ModTime().Before(fileInfo.ModTime()) {
		//A compiled file that cannot be used is compiled again
		if cat, err := load_compiled.File(settings.CompiledOutputPath+compiledFileName, settings.CompressCompiled); err != nil {
			pf.Warnings = append(pf.Warnings, fmt.Sprintf("Compiled catalog file “%s” was compiled again: %s", compiledFileName, err.Error()))
		} else if cat.LocaleIdentifier != pf.LocaleIdentifier {
			pf.Warnings = append(pf.Warnings, fmt.Sprintf("Compiled catalog file “%s” locale identifier “%s” does not match", compiledFileName, cat.LocaleIdentifier))
		} else {
			pf.Catalog = cat
			pf.Flags |= PFF_Load_Compiled | PFF_Catalog_SuccessfullyLoaded
			return nil
		}
	}

	//Read the message file
	var topItem tpItem
	var fileBytes []byte
	if b, err := os.ReadFile(settings.InputPath + pf.InputFileName); err != nil {
		pf.Flags |= PFF_Load_NotFound
		return couldNotErr(ea_open, eft_messages, pf.InputFileName, err)
	} else {
		fileBytes = b
	}
	switch ext := pf.InputFileName[len(pf.LocaleIdentifier)+1:]; strings.ToLower(ext) {
	case YAML_Extension:
		pf.Flags |= PFF_Load_YAML
		if y, err := fromYamlFile(fileBytes); err != nil {
			return couldNotErr(ea_read, eft_messages, pf.InputFileName, err)
		} else {
			topItem = &y
		}
	case JSON_Extension:
		pf.Flags |= PFF_Load_JSON
		if j, err := fromJsonFile(fileBytes, settings.AllowJSONTrailingComma); err != nil {
			return couldNotErr(ea_read, eft_messages, pf.InputFileName, err)
		} else {
			topItem = &j
		}
	default:
		pf.Flags |= PFF_Load_NotFound
		return fmt.Errorf("Extension “%s” for file “%s” must be %s", ext, pf.InputFileName, strings.Join([]string{YAML_Extension, JSON_Extension}, " or "))
	}

	//Compile the messages
	cat, errs, warnings := compileMessageFile(topItem, pf.LocaleIdentifier)
	pf.Warnings = append(pf.Warnings, warnings...)
	if len(errs) != 0 {
		return couldNotErr(ea_compile, eft_messages, pf.InputFileName, errors.New(strings.Join(errs, "\n")))
	}

	//Make sure the locale identifier matches what’s in the file
	if cat.LocaleIdentifier != pf.LocaleIdentifier {
		pf.Flags |= PFF_Error_DuringProcessing
		return fmt.Errorf("Message file “%s” locale identifier “%s” does not match", pf.InputFileName, cat.LocaleIdentifier)
	}
	pf.Catalog = cat
	pf.Flags |= PFF_Catalog_SuccessfullyLoaded

	//Output the go block file for the default locale
	if settings.OutputGoBlocks && pf.Flags&PFF_Catalog_IsDefault != 0 {
		if updated, err := writeGoBlocks(settings.GoOutputPath, goPackageName(settings.GoPackageName, pf.LocaleIdentifier), cat); err != nil {
			pf.Flags |= PFF_Error_DuringProcessing
			return fmt.Errorf("Could not save go block file: %s", err.Error())
		} else if updated {
			pf.Flags |= PFF_OutputSuccess_GoBlocks
		}
	}

	//Output the compiled catalog file
	if settings.OutputCompiled {
		if fc, err := os.Create(settings.CompiledOutputPath + compiledFileName); err != nil {
			return couldNotErr(ea_open, eft_compiled, compiledFileName, err)
		} else {
			defer func() { _ = fc.Close() }()
			if err := cat.Save(fc, settings.CompressCompiled); err != nil {
				return couldNotErr(ea_save, eft_compiled, compiledFileName, err)
			}
		}
		pf.Flags |= PFF_OutputSuccess_CompiledCatalog
	}

	//Return success
	return nil
}

// Finds the message file of each locale and processes them, the default locale first
func (settings *ProcessSettings) processLocales(localeIdentifier string, withDefault bool) (ProcessedFileList, error) {
	//Check and update the settings
	if err := settings.checkSettings(); err != nil {
		return nil, err
	}

	//The locales to process
	localeOrder := []string{localeIdentifier}
	if withDefault && localeIdentifier != settings.DefaultLocale {
		localeOrder = []string{settings.DefaultLocale, localeIdentifier}
	}

	ret := make(ProcessedFileList)
FileLoop:
	for _, curLocale := range localeOrder {
		//Add the ProcessedFile to the return list
		pf := &ProcessedFile{
			LocaleIdentifier: curLocale,
			Flags:            PFF_Load_NotAttempted | cond(curLocale == settings.DefaultLocale, PFF_Catalog_IsDefault, 0),
		}
		ret[curLocale] = pf

		//Attempt to find the message file from the possible file extensions
		for _, ext := range []string{YAML_Extension, JSON_Extension} {
			if fInfo, err := os.Stat(settings.InputPath + curLocale + "." + ext); err != nil || fInfo.IsDir() {
				continue
			} else {
				pf.InputFileName = fInfo.Name()
			}

			if pf.Err = settings.processFile(pf); pf.Err != nil {
				return ret, pf.Err
			}
			continue FileLoop
		}

		//Return error if file not found
		pf.Flags = (pf.Flags | PFF_Load_NotFound) & ^PFF_Load_NotAttempted
		return ret, fmt.Errorf("File for “%s” was not found starting from “%s”", curLocale, localeIdentifier)
	}

	//Check the block names against the default
	if defaultFile, ok := ret[settings.DefaultLocale]; ok && withDefault {
		if pf := ret[localeIdentifier]; pf != defaultFile {
			checkAgainstDefault(pf, defaultFile)
		}
	}

	return ret, nil
}

// Adds warnings for the blocks a catalog is missing or has in addition to the default catalog
func checkAgainstDefault(pf, defaultFile *ProcessedFile) {
	if pf.Catalog == nil || defaultFile.Catalog == nil {
		return
	}

	toSet := func(names []string) map[string]struct{} {
		ret := make(map[string]struct{}, len(names))
		for _, n := range names {
			ret[n] = struct{}{}
		}
		return ret
	}
	defaultNames, names := defaultFile.Catalog.Names(), pf.Catalog.Names()
	defaultSet, set := toSet(defaultNames), toSet(names)

	for _, n := range defaultNames {
		if _, ok := set[n]; !ok {
			pf.Warnings = append(pf.Warnings, fmt.Sprintf("“%s” from the default locale is missing", n))
		}
	}
	for _, n := range names {
		if _, ok := defaultSet[n]; !ok {
			pf.Warnings = append(pf.Warnings, fmt.Sprintf("“%s” does not exist in the default locale", n))
		}
	}
	if len(pf.Warnings) != 0 {
		pf.Flags |= PFF_Catalog_HasWarnings
	}
}
