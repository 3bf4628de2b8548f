//Constants used in automations
//go:build !i18nops_runtime_only

package execute

//goland:noinspection GoSnakeCaseUsage
const (
	SettingsFileName     = "settings-i18nops.json"
	GoBlocksFileName     = "Blocks.go"
	GoBlocksHashFileName = "BlockHashes.json"
	YAML_Extension       = "yaml"
	JSON_Extension       = "json"
)

//goland:noinspection GoSnakeCaseUsage,GoCommentStart
const (
	_ ProcessedFileFlag = 1 << iota

	//Catalog info
	PFF_Catalog_SuccessfullyLoaded //If the Catalog was compiled or loaded and filled into ProcessedFile
	PFF_Catalog_IsDefault          //If this is the default locale
	PFF_Catalog_HasWarnings        //If compiling (or checking against the default locale) produced warnings

	//Loading state (mutually exclusive)
	PFF_Load_NotAttempted //File loading was not attempted because other errors occurred first
	PFF_Load_NotFound     //File was not loaded because its message file was not found
	PFF_Load_YAML         //If this was compiled from a YAML message file
	PFF_Load_JSON         //If this was compiled from a JSON message file
	PFF_Load_Compiled     //If this was loaded from a compiled catalog file (compression state is assumed from ProcessSettings.CompressCompiled)

	//Error information
	PFF_Error_DuringProcessing //If errors occurred during processing

	//File output success flags
	PFF_OutputSuccess_CompiledCatalog //If a compiled catalog file was successfully output (only when ProcessSettings.OutputCompiled)
	PFF_OutputSuccess_GoBlocks        //If the go block names file was updated (only when ProcessSettings.OutputGoBlocks and PFF_Catalog_IsDefault)
)

// ProcessedFileFlagName : See ProcessedFileFlagNames
type ProcessedFileFlagName struct {
	Flag      ProcessedFileFlag
	Name      string
	ShortName [4]byte //All shortname strings must be 4 bytes
}

// ProcessedFileFlagNames is named information about the ProcessedFileFlags
var ProcessedFileFlagNames = []ProcessedFileFlagName{
	createPFFN(1, "UNUSED", "    "),
	createPFFN(PFF_Catalog_SuccessfullyLoaded, "Catalog_SuccessfullyLoaded", "SuLD"),
	createPFFN(PFF_Catalog_IsDefault, "Catalog_IsDefault", "Defa"),
	createPFFN(PFF_Catalog_HasWarnings, "Catalog_HasWarnings", "Warn"),
	createPFFN(PFF_Load_NotAttempted, "Load_NotAttempted", "LoNA"),
	createPFFN(PFF_Load_NotFound, "Load_NotFound", "LoNF"),
	createPFFN(PFF_Load_YAML, "Load_YAML", "LoYA"),
	createPFFN(PFF_Load_JSON, "Load_JSON", "LoJS"),
	createPFFN(PFF_Load_Compiled, "Load_Compiled", "LoCo"),
	createPFFN(PFF_Error_DuringProcessing, "Error_DuringProcessing", "Er  "),
	createPFFN(PFF_OutputSuccess_CompiledCatalog, "OutputSuccess_CompiledCatalog", "OuCC"),
	createPFFN(PFF_OutputSuccess_GoBlocks, "OutputSuccess_GoBlocks", "OuGB"),
}

func createPFFN(Flag ProcessedFileFlag, Name string, shortName string) ProcessedFileFlagName {
	return ProcessedFileFlagName{Flag, Name, [4]byte([]byte(shortName))}
}
