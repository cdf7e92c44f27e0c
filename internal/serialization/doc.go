// Package serialization provides the .born checkpoint format: a state
// dictionary stored together with the input and output ports of the module
// it was saved from.
//
//	Format Structure:
//	  [4 bytes: Magic "BORN"]
//	  [4 bytes: Version (uint32 LE)]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON metadata, ports as type literals]
//	  [Padding to a 64-byte boundary]
//	  [Tensor data: raw bytes]
//
// The header carries a SHA-256 checksum of the data section.
//
// Loading a checkpoint into a module first verifies that the module still
// declares the ports recorded in the file:
//
//	ckpt, err := serialization.Load("model.born")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ckpt.Verify(model); err != nil {
//	    // errors.Is(err, typecheck.ErrTypeMismatch) if a port changed type
//	}
package serialization
