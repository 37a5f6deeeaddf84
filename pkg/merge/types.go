package merge

// FileDescriptor pairs an input path with its on-disk size. Read once from
// filesystem metadata and used only to compute processing order.
type FileDescriptor struct {
	Path string
	Size int64
}

// LineBatch is a capacity-bounded set of unique, trimmed lines produced by
// one ingestion worker. The producing worker owns it exclusively until the
// channel send, after which ownership transfers to the aggregator.
type LineBatch map[string]struct{}

// Arguments holds the settings for one merge run.
type Arguments struct {
	InputFile    string // file listing one input path per line
	OutputFile   string // destination for the deduplicated output
	Threads      int    // ingestion worker pool size
	ProgressFile string // checkpoint path, empty disables checkpointing
	Verbose      bool   // enable detailed logging
	Debug        bool   // enable debug logging
}

// Processing constants. Sizes follow the behavior of the ingestion pipeline:
// a batch is flushed to the aggregator when it reaches the computed line
// capacity or after this many raw input bytes, whichever comes first.
const (
	chunkByteLimit   = 10 * 1024 * 1024 // raw bytes per batch flush
	channelCapacity  = 1000             // batches buffered between producers and aggregator
	outputBufferSize = 16 * 1024 * 1024 // output writer buffer, flushed at this threshold
	batchSizeHint    = 1 << 16          // initial map sizing for a fresh batch
)
