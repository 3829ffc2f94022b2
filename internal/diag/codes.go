package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Разрешение имён
	ResInfo               Code = 3000
	ResAmbiguous          Code = 3001
	ResAmbiguousPrelude   Code = 3002
	ResDuplicate          Code = 3003
	ResDuplicateBinding   Code = 3004
	ResDuplicateIntrinsic Code = 3005
	ResNotFound           Code = 3006
	ResNotAvailable       Code = 3007
	ResUnimplemented      Code = 3008

	// I/O
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IODecodeError   Code = 4002

	// Проект
	ProjInfo              Code = 5000
	ProjBadManifest       Code = 5001
	ProjMissingDependency Code = 5002
	ProjBadInterface      Code = 5003
	ProjDependencyCycle   Code = 5004

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		ResInfo:               "Name resolution information",
		ResAmbiguous:          "Ambiguous name",
		ResAmbiguousPrelude:   "Ambiguous name in prelude",
		ResDuplicate:          "Duplicate declaration",
		ResDuplicateBinding:   "Duplicate binding in pattern",
		ResDuplicateIntrinsic: "Duplicate intrinsic",
		ResNotFound:           "Name not found",
		ResNotAvailable:       "Name no longer available",
		ResUnimplemented:      "Use of unimplemented item",
		IOInfo:                "I/O information",
		IOLoadFileError:       "I/O load file error",
		IODecodeError:         "Malformed AST document",
		ProjInfo:              "Project information",
		ProjBadManifest:       "Invalid project manifest",
		ProjMissingDependency: "Missing dependency interface",
		ProjBadInterface:      "Malformed dependency interface",
		ProjDependencyCycle:   "Dependency cycle",
		ObsInfo:               "Observability information",
		ObsTimings:            "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
