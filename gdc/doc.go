// Package gdc reconciles a GDC download against its manifest and sample sheet
// and reorganizes the downloaded files into a category/type tree.
//
// A run is a linear pass over one in-memory Table:
//
//   - Load joins the manifest and the sample sheet on file id, one row per
//     manifest entry, each with a relative source path ./<file_id>/<file_name>.
//   - Check confirms every file is present and, optionally, that its MD5 matches
//     the manifest.
//   - Plan assigns every row a unique identifier within its (category, type)
//     bucket and computes a collision-free destination path.
//   - EnsureDirs and Execute create the tree and copy or move the files.
//
// Nothing is mutated on disk until Plan has accounted for every row. The table
// is written out as allfiles.md5, info_initial.tsv and info_final.tsv.
package gdc
