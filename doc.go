// Package tdms provides a pure Go reader and writer for the Technical
// Data Management Streaming (TDMS) file format used by National
// Instruments (NI) software such as LabVIEW.
//
// Open a file with [Open], or wrap an already-open [io.ReadWriteSeeker]
// with [New]. Discover the group/channel hierarchy with [File.ListGroups]
// and [File.ListChannelsInGroup], then read values with [ReadChannel] or
// [ReadChannelFrom]:
//
//	file, err := tdms.Open("data.tdms")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	for _, group := range file.ListGroups() {
//		for _, channel := range file.ListChannelsInGroup(group) {
//			n, err := file.ChannelLength(channel)
//			if err != nil {
//				log.Fatal(err)
//			}
//
//			values := make([]float64, n)
//			if _, err := tdms.ReadChannel(file, channel, values); err != nil {
//				log.Fatal(err)
//			}
//			fmt.Println(values)
//		}
//	}
//
// To read several channels in one pass, use [File.ReadChannels] with
// [Into] to build heterogeneous destinations without reflection:
//
//	temps := make([]float64, 1000)
//	flags := make([]bool, 1000)
//	err := file.ReadChannels([]tdms.ReadRequest{
//		{Path: "/'sensors'/'temperature'", Destination: tdms.Into(temps)},
//		{Path: "/'sensors'/'valve_open'", Destination: tdms.Into(flags)},
//	})
//
// Files, groups, and channels can all have properties. Use
// [File.ReadProperty] or [File.ReadAllProperties], and the typed As*
// methods on [PropertyValue] to extract a value safely:
//
//	author, err := file.ReadProperty("/", "Author")
//	if err != nil {
//		log.Fatal(err)
//	}
//	name, err := author.AsString()
//
// Timestamps are stored as [Timestamp], which carries more precision than
// [time.Time]. Convert with [Timestamp.AsTime], or construct one from a
// [time.Time] with [NewTimestampFromTime].
//
// TDMS supports 128-bit extended-precision floats, represented here as
// [Float128]. Convert to a float64 (lossy) with [Float128.Float64], or to
// an arbitrary-precision [big.Float] with [Float128.BigFloat]. This
// library treats Float128 as opaque data it can store and retrieve
// exactly; it performs no arithmetic on extended-precision values itself.
//
// Writing uses a [Writer] obtained from [File.Writer]:
//
//	file, err := tdms.Create("out.tdms")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	w, err := file.Writer()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_, err = w.WriteChannels(false, tdms.LayoutContiguous, []tdms.ChannelData{
//		{Path: "/'sensors'/'temperature'", Values: []float64{20.1, 20.3, 20.4}},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Raw data for DAQmx-scaled channels and variable-length string channels
// is not supported. A file whose metadata holds a DAQmx raw-data index,
// or whose raw data includes a string channel, fails to open with
// ErrUnsupportedType; the properties in such a file are not readable
// either.
package tdms
