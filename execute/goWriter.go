//Write go block name files
//go:build !i18nops_runtime_only

package execute

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dakusan/i18nops/i18n"
)

// Returns the package name of the generated go file of a locale
func goPackageName(settingsName, localeIdentifier string) string {
	if len(settingsName) != 0 {
		return settingsName
	}
	return strings.ToLower(strings.NewReplacer("-", "_", ".", "_").Replace(localeIdentifier))
}

// Writes “$outputDirectory/$locale/Blocks.go” holding a constant for every block name of the catalog.
//
// The file is only written when its sha1 differs from the one stored in $outputDirectory/$GoBlocksHashFileName.
func writeGoBlocks(outputDirectory, packageName string, cat *i18n.Catalog) (updated bool, _ error) {
	outputDirectory = addSlash(outputDirectory)

	//Header
	builder := bytes.Buffer{}
	_, _ = fmt.Fprintf(&builder, "// Code generated by i18nops. DO NOT EDIT.\n\npackage %s\n\n", packageName)
	_, _ = fmt.Fprintf(&builder, "// Block names of the “%s” catalog\n//\n//goland:noinspection NonAsciiCharacters\nconst (\n", cat.LocaleIdentifier)

	//Write the constants. Messages are written as the comment.
	writeConst := func(name, comment string, isLast bool) {
		builder.Write([]byte{'\t', '/', '/'})
		builder.WriteString(name)
		builder.WriteString(" = ")
		builder.WriteString(strings.ReplaceAll(comment, "\n", "\n\t//"))
		_, _ = fmt.Fprintf(&builder, "\n\t%s = %q\n", name, name)
		if !isLast {
			builder.WriteByte('\n')
		}
	}
	numNames := len(cat.Blocks) + len(cat.Attributes)
	for i, b := range cat.Blocks {
		writeConst(b.Name, b.Message, i == numNames-1)
	}
	for i, b := range cat.Attributes {
		attrNames := make([]string, 0, len(b.Block.Static)+len(b.Block.Update))
		for _, s := range b.Block.Static {
			attrNames = append(attrNames, s.Name)
		}
		for _, u := range b.Block.Update {
			attrNames = append(attrNames, u.AttrName)
		}
		writeConst(b.Name, fmt.Sprintf("Attributes [%s] of node %d", strings.Join(attrNames, ", "), b.Block.Index), len(cat.Blocks)+i == numNames-1)
	}
	builder.Write([]byte{')', '\n'})

	//Get the hash of the result
	resultStr := builder.Bytes()
	hashSumBytes := sha1.Sum(resultStr)
	hashSumString := hex.EncodeToString(hashSumBytes[:])

	//Get the saved hashes. If an error occurs assume we have no hashes.
	savedHashes := make(map[string]string)
	if getHashes, err := os.ReadFile(outputDirectory + GoBlocksHashFileName); err == nil {
		_ = json.Unmarshal(getHashes, &savedHashes)
	}

	//If the hash has not changed (and the file still exists) then nothing left to do
	outDir := outputDirectory + cat.LocaleIdentifier + "/"
	if savedHashes[cat.LocaleIdentifier] == hashSumString {
		if fileInfo, err := os.Stat(outDir + GoBlocksFileName); err == nil && !fileInfo.IsDir() {
			return false, nil
		}
	}

	//Create/confirm the directory
	if dirInfo, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return false, fmt.Errorf("Error creating block directory %s: %s", cat.LocaleIdentifier, err.Error())
		}
	} else if err != nil {
		return false, fmt.Errorf("Error accessing block directory %s: %s", cat.LocaleIdentifier, err.Error())
	} else if !dirInfo.IsDir() {
		return false, fmt.Errorf("Block directory %s: Is not a directory", cat.LocaleIdentifier)
	}

	//Write the file
	if err := os.WriteFile(outDir+GoBlocksFileName, resultStr, 0644); err != nil {
		return false, fmt.Errorf("Error writing %s for %s: %s", GoBlocksFileName, cat.LocaleIdentifier, err.Error())
	}

	//Write the new hash file
	savedHashes[cat.LocaleIdentifier] = hashSumString
	file, err := os.Create(outputDirectory + GoBlocksHashFileName)
	if err != nil {
		return true, errors.New("Error opening hash file for writing: " + err.Error())
	}
	defer func() { _ = file.Close() }()
	newEncoder := json.NewEncoder(file)
	newEncoder.SetIndent("", "\t")
	if err := newEncoder.Encode(savedHashes); err != nil {
		return true, errors.New("Error encoding to hash file: " + err.Error())
	}

	return true, nil
}
