// Package clipcast coordinates the lifecycle of published video assets
// across two independently-failing stores: a blob store holding the video
// and thumbnail payloads, and a metadata repository holding one record per
// asset.
//
// The Service orders every mutation so that a readable metadata record
// always references blobs that exist. Blobs are written before the record
// that names them, replacement blobs are written and referenced before the
// old blob is removed, and failed mutations compensate by deleting the
// blobs they wrote. Concurrent mutations are serialized by the
// repository's version-conditioned writes; the coordinator itself holds no
// state and no locks.
package clipcast
