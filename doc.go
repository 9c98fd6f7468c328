// Package main provides the gdcsort command-line interface.
//
// gdcsort organizes a bulk download from the GDC data portal. Run it from the
// download directory with the manifest and the sample sheet:
//
//	gdcsort sort -m gdc_manifest.2024-07-03.txt -s gdc_sample_sheet.2024-07-03.tsv
//
// The default action is a dry run that writes allfiles.md5, which can be
// checked with
//
//	md5sum -c allfiles.md5 | grep -v "OK$"
//
// and the planned layout in info_final.tsv. Add -a copy or -a move to
// organize the files into <Data_Category>/<Data_Type>/.
//
// The binary supports these subcommands:
//   - sort: check the download and organize it
//   - check: only check that the download is complete
//   - verify: re-check an organized tree against info_final.tsv
//   - seed: generate a synthetic download
package main
