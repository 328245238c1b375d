// Package video provides reference-counted pixel buffers for video frames.
//
// A frame's pixels can arrive in several layouts depending on the camera,
// decoder or platform that produced them. This package exposes all of them
// through one handle type and gives every consumer a way back to the
// canonical I420 layout.
//
// # Layouts
//
//	I420   8-bit planar 4:2:0     Y + U + V, chroma ceil(w/2) x ceil(h/2)
//	I420A  I420 + alpha           Y + U + V + A
//	I422   8-bit planar 4:2:2     chroma ceil(w/2) x h
//	I444   8-bit planar 4:4:4     chroma w x h
//	I010   10-bit planar 4:2:0    samples in uint16, strides in bytes
//	NV12   8-bit biplanar 4:2:0   Y + interleaved UV
//	Native opaque producer buffer, ToI420 only
//
// # Buffers and Ownership
//
// Every handle owns one reference to its storage. Retain and the Get* views
// add a reference; Release drops this handle's reference exactly once:
//
//	buf, err := video.NewI420Buffer(640, 480)
//	if err != nil {
//	    return fmt.Errorf("allocation failed: %w", err)
//	}
//	defer buf.Release()
//
//	shared := buf.Retain()  // same pixels, second owner
//	go consume(shared)      // consume releases when done
//
// Transfer hands ownership to a new handle without touching the count, which
// is how a buffer crosses an ownership boundary such as a channel or a
// foreign-function handle table. Using a handle after Release or Transfer
// panics with ErrBufferReleased.
//
// Reads are safe from any number of goroutines. Writes go through the
// Mutable* accessors, which panic with ErrStorageShared unless the handle is
// the only owner.
//
// # Views and Conversion
//
// Get* returns a native view of a layout the buffer already has and fails
// with ErrUnsupportedConversion otherwise. I420A also has an I420 view over
// its Y, U and V planes:
//
//	nv12, err := buf.GetNV12()
//	if errors.Is(err, video.ErrUnsupportedConversion) {
//	    // not NV12; fall back to the canonical form
//	}
//
// ToI420 always succeeds for a live buffer with memory to convert into:
//
//	i420, err := buf.ToI420()
//	if err != nil {
//	    return err
//	}
//	defer i420.Release()
//
// As* downcasts return the same handle typed concretely and refuse with
// ErrBufferTypeMismatch when the type does not match.
//
// # Allocation
//
// BufferAllocator draws storage from an interfaces.Allocator, such as the
// tiered pool, heap or mmap allocators in package real. Package level
// constructors use DefaultAllocator. Conversions allocate from the
// allocator that owns the source.
//
// # Scaling and Images
//
// Scaler, ScaleI420 and CropAndScaleI420 resize with bilinear interpolation.
// ToImage exposes planar buffers as image.YCbCr without copying and
// NewI420FromImage imports any image.Image.
package video
