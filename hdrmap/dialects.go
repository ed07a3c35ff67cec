package hdrmap

import (
	"fmt"

	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
)

const (
	i16 = format.WireInt16
	i32 = format.WireInt32
	u16 = format.WireUint16
	f32 = format.WireFloat32
	f46 = format.WireFixed46

	vInt    = format.ValueInt
	vFloat  = format.ValueFloat
	vDouble = format.ValueDouble
)

func fld(name string, offset int, wire format.WireType, out format.ValueType, desc string) Field {
	return Field{Name: name, ByteOffset: offset, ByteSize: wire.Size(), Wire: wire, Out: out, Description: desc}
}

func str(name string, offset, size int, desc string) Field {
	return Field{Name: name, ByteOffset: offset, ByteSize: size, Wire: format.WireString, Out: format.ValueString, Description: desc}
}

// dialectFields returns the built-in field table of d.
func dialectFields(d format.Dialect) ([]Field, error) {
	switch d {
	case format.DialectStandard:
		return standardFields(), nil
	case format.DialectOBC:
		return append(standardBefore(204), obcFields()...), nil
	case format.DialectSEND:
		return append(standardBefore(204), sendFields()...), nil
	case format.DialectARMSS:
		return append(standardBefore(204), armssFields()...), nil
	case format.DialectPSEGY:
		return append(standardBefore(180), psegyFields()...), nil
	case format.DialectNodeOld:
		return append(standardBefore(180), nodeOldFields()...), nil
	case format.DialectNode:
		return append(standardBefore(204), nodeFields()...), nil
	case format.DialectSU:
		return append(suBaseFields(), suExtensionFields()...), nil
	case format.DialectSUOnly:
		return suOnlyFields(), nil
	case format.DialectSUBoth:
		return append(standardBefore(180), suExtensionFields()...), nil
	case format.DialectNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownDialect, d)
	}
}

// standardBefore returns the standard fields ending at or before offset end.
func standardBefore(end int) []Field {
	all := standardFields()
	out := make([]Field, 0, len(all))
	for _, f := range all {
		if f.End() <= end {
			out = append(out, f)
		}
	}

	return out
}

// standardFields is the SEG-Y rev1 trace header. Bytes 233-240 are left
// unassigned.
func standardFields() []Field {
	return []Field{
		fld("trc_seq_line", 0, i32, vInt, "Trace sequence number within line"),
		fld("trc_seq_file", 4, i32, vInt, "Trace sequence number within file"),
		fld("ffid", 8, i32, vInt, "Original field record number"),
		fld("chan", 12, i32, vInt, "Trace number within field record"),
		fld("source", 16, i32, vInt, "Energy source point number"),
		fld("cmp", 20, i32, vInt, "CMP ensemble number"),
		fld("trc_ens", 24, i32, vInt, "Trace number within ensemble"),
		fld("trc_type", 28, i16, vInt, "Trace identification code"),
		fld("nvst", 30, i16, vInt, "Number of vertically summed traces"),
		fld("nhst", 32, i16, vInt, "Number of horizontally stacked traces"),
		fld("data_use", 34, i16, vInt, "Data use (1=production, 2=test)"),
		fld("offset", 36, i32, vInt, "Source to receiver distance"),
		fld("rec_elev", 40, i32, vDouble, "Receiver group elevation"),
		fld("sou_elev", 44, i32, vDouble, "Surface elevation at source"),
		fld("sou_z", 48, i32, vDouble, "Source depth below surface"),
		fld("rec_datum", 52, i32, vDouble, "Datum elevation at receiver group"),
		fld("sou_datum", 56, i32, vDouble, "Datum elevation at source"),
		fld("sou_wdep", 60, i32, vDouble, "Water depth at source"),
		fld("rec_wdep", 64, i32, vDouble, "Water depth at receiver group"),
		fld("scalar_elev", 68, i16, vInt, "Scalar applied to elevations and depths"),
		fld("scalar_coord", 70, i16, vInt, "Scalar applied to coordinates"),
		fld("sou_x", 72, i32, vDouble, "Source X coordinate"),
		fld("sou_y", 76, i32, vDouble, "Source Y coordinate"),
		fld("rec_x", 80, i32, vDouble, "Receiver X coordinate"),
		fld("rec_y", 84, i32, vDouble, "Receiver Y coordinate"),
		fld("coord_units", 88, i16, vInt, "Coordinate units (1=length, 2=arc seconds)"),
		fld("wvel", 90, i16, vInt, "Weathering velocity"),
		fld("subwvel", 92, i16, vInt, "Subweathering velocity"),
		fld("upholt_sou", 94, i16, vInt, "Uphole time at source [ms]"),
		fld("upholt_rec", 96, i16, vInt, "Uphole time at receiver [ms]"),
		fld("stat_sou", 98, i16, vDouble, "Source static correction [ms]"),
		fld("stat_rec", 100, i16, vDouble, "Receiver static correction [ms]"),
		fld("stat_tot", 102, i16, vDouble, "Total static applied [ms]"),
		fld("lag_a", 104, i16, vInt, "Lag time A [ms]"),
		fld("lag_b", 106, i16, vInt, "Lag time B [ms]"),
		fld("delay", 108, i16, vInt, "Delay recording time [ms]"),
		fld("mute_s", 110, i16, vInt, "Mute time start [ms]"),
		fld("mute_e", 112, i16, vInt, "Mute time end [ms]"),
		fld("nsamp", 114, u16, vInt, "Number of samples in this trace"),
		fld("sampint_us", 116, u16, vInt, "Sample interval [us]"),
		fld("gain_type", 118, i16, vInt, "Gain type of field instruments"),
		fld("gain_const", 120, i16, vInt, "Instrument gain constant [dB]"),
		fld("gain_init", 122, i16, vInt, "Instrument early or initial gain [dB]"),
		fld("correlated", 124, i16, vInt, "Correlated (1=no, 2=yes)"),
		fld("sweep_f0", 126, i16, vInt, "Sweep frequency at start [Hz]"),
		fld("sweep_f1", 128, i16, vInt, "Sweep frequency at end [Hz]"),
		fld("sweep_len", 130, i16, vInt, "Sweep length [ms]"),
		fld("sweep_type", 132, i16, vInt, "Sweep type"),
		fld("sweep_tap_s", 134, i16, vInt, "Sweep taper length at start [ms]"),
		fld("sweep_tap_e", 136, i16, vInt, "Sweep taper length at end [ms]"),
		fld("taper_type", 138, i16, vInt, "Taper type"),
		fld("alias_freq", 140, i16, vInt, "Alias filter frequency [Hz]"),
		fld("alias_slope", 142, i16, vInt, "Alias filter slope [dB/oct]"),
		fld("notch_freq", 144, i16, vInt, "Notch filter frequency [Hz]"),
		fld("notch_slope", 146, i16, vInt, "Notch filter slope [dB/oct]"),
		fld("lowcut_freq", 148, i16, vInt, "Low-cut frequency [Hz]"),
		fld("highcut_freq", 150, i16, vInt, "High-cut frequency [Hz]"),
		fld("lowcut_slope", 152, i16, vInt, "Low-cut slope [dB/oct]"),
		fld("highcut_slope", 154, i16, vInt, "High-cut slope [dB/oct]"),
		fld("year", 156, i16, vInt, "Year data recorded"),
		fld("day", 158, i16, vInt, "Day of year"),
		fld("hour", 160, i16, vInt, "Hour of day"),
		fld("minute", 162, i16, vInt, "Minute of hour"),
		fld("second", 164, i16, vInt, "Second of minute"),
		fld("time_code", 166, i16, vInt, "Time basis code"),
		fld("trc_weight", 168, i16, vInt, "Trace weighting factor"),
		fld("geo_roll_pos", 170, i16, vInt, "Geophone group number of roll switch position one"),
		fld("geo_first_trc", 172, i16, vInt, "Geophone group number of first trace"),
		fld("geo_last_trc", 174, i16, vInt, "Geophone group number of last trace"),
		fld("gap_size", 176, i16, vInt, "Gap size (total number of groups dropped)"),
		fld("overtravel", 178, i16, vInt, "Overtravel associated with taper"),
		fld("cmp_x", 180, i32, vDouble, "CMP X coordinate"),
		fld("cmp_y", 184, i32, vDouble, "CMP Y coordinate"),
		fld("iline", 188, i32, vInt, "Inline number"),
		fld("xline", 192, i32, vInt, "Crossline number"),
		fld("sp", 196, i32, vInt, "Shotpoint number"),
		fld("scalar_sp", 200, i16, vInt, "Scalar applied to shotpoint number"),
		fld("trc_units", 202, i16, vInt, "Trace value measurement unit"),
		fld("transd_const", 204, f46, vDouble, "Transduction constant"),
		fld("transd_units", 210, i16, vInt, "Transduction units"),
		fld("device_id", 212, i16, vInt, "Device/trace identifier"),
		fld("scalar_stat", 214, i16, vInt, "Scalar applied to static corrections"),
		fld("sou_type", 216, i16, vInt, "Source type/orientation"),
		fld("sou_dir_v", 218, i16, vInt, "Source energy direction, vertical"),
		fld("sou_dir_il", 220, i16, vInt, "Source energy direction, inline"),
		fld("sou_dir_xl", 222, i16, vInt, "Source energy direction, crossline"),
		fld("sou_meas", 224, f46, vDouble, "Source measurement"),
		fld("sou_meas_units", 230, i16, vInt, "Source measurement unit"),
	}
}

// obcFields redefines bytes 205-240 for ocean bottom cable receivers.
func obcFields() []Field {
	return []Field{
		fld("rcv_line", 204, i32, vInt, "Receiver line number"),
		fld("rcv_station", 208, i32, vInt, "Receiver station number"),
		fld("rcv_index", 212, i16, vInt, "Receiver index within station"),
		fld("scalar_stat", 214, i16, vInt, "Scalar applied to static corrections"),
		fld("sensor", 216, i16, vInt, "Sensor component (1=hydrophone, 2=vertical, 3=inline, 4=crossline)"),
		fld("cable", 218, i16, vInt, "Cable number"),
		fld("rec_dep", 220, i32, vDouble, "Receiver depth below sea surface"),
		fld("azimuth", 224, f32, vFloat, "Sensor azimuth [deg]"),
		fld("tilt", 228, f32, vFloat, "Sensor tilt [deg]"),
		fld("rcv_seq", 232, i32, vInt, "Receiver sequence number"),
	}
}

// sendFields redefines bytes 205-240 for SEND node recordings.
func sendFields() []Field {
	return []Field{
		fld("node_id", 204, i32, vInt, "Node serial number"),
		fld("clock_drift", 208, i32, vInt, "Clock drift correction [us]"),
		fld("sensor", 212, i16, vInt, "Sensor component"),
		fld("scalar_stat", 214, i16, vInt, "Scalar applied to static corrections"),
		fld("rec_dep", 216, i32, vDouble, "Receiver depth below sea surface"),
		fld("water_vel", 220, f32, vFloat, "Water velocity [m/s]"),
		fld("time_sec", 224, i32, vInt, "Record start time [s since epoch]"),
		fld("time_usec", 228, i32, vInt, "Record start time fraction [us]"),
		fld("rcv_line", 232, i32, vInt, "Receiver line number"),
		fld("rcv_station", 236, i32, vInt, "Receiver station number"),
	}
}

// armssFields redefines bytes 205-240 for ARMSS unit recordings.
func armssFields() []Field {
	return []Field{
		fld("unit_id", 204, i32, vInt, "Recording unit identifier"),
		fld("gps_time", 208, i32, vInt, "GPS time of first sample [s]"),
		fld("chan_gain", 212, i16, vInt, "Channel gain [dB]"),
		fld("scalar_stat", 214, i16, vInt, "Scalar applied to static corrections"),
		fld("battery", 216, f32, vFloat, "Battery voltage [V]"),
		fld("temperature", 220, f32, vFloat, "Unit temperature [C]"),
		fld("sample_skew", 224, i32, vInt, "Sample skew [us]"),
		fld("rec_dep", 228, i32, vDouble, "Receiver depth below sea surface"),
		fld("rcv_line", 232, i32, vInt, "Receiver line number"),
		fld("rcv_station", 236, i32, vInt, "Receiver station number"),
	}
}

// psegyFields is the PASSCAL extension of bytes 181-240.
func psegyFields() []Field {
	return []Field{
		str("station_name", 180, 6, "Station name"),
		str("sensor_serial", 186, 8, "Sensor serial number"),
		str("channel_name", 194, 4, "Channel name"),
		fld("stat_tot_hi", 198, i16, vInt, "Total static in hundredths of ms"),
		fld("samp_rate", 200, i32, vInt, "Sample interval [us], full range"),
		fld("data_form", 204, i16, vInt, "Sample format (0=16-bit, 1=32-bit integer)"),
		fld("m_secs", 206, i16, vInt, "Milliseconds of first sample"),
		fld("trig_year", 208, i16, vInt, "Trigger time year"),
		fld("trig_day", 210, i16, vInt, "Trigger time day of year"),
		fld("trig_hour", 212, i16, vInt, "Trigger time hour"),
		fld("trig_minute", 214, i16, vInt, "Trigger time minute"),
		fld("trig_second", 216, i16, vInt, "Trigger time second"),
		fld("trig_msec", 218, i16, vInt, "Trigger time millisecond"),
		fld("scale_fac", 220, f32, vFloat, "Scale factor from counts to units"),
		fld("inst_no", 224, u16, vInt, "Instrument serial number"),
		fld("num_samps", 228, i32, vInt, "Number of samples, full range"),
		fld("max_val", 232, i32, vInt, "Maximum sample value in counts"),
		fld("min_val", 236, i32, vInt, "Minimum sample value in counts"),
	}
}

// nodeOldFields redefines bytes 181-228 for first-generation node data.
func nodeOldFields() []Field {
	return []Field{
		fld("node_id", 180, i32, vInt, "Node serial number"),
		fld("rcv_line", 184, i32, vInt, "Receiver line number"),
		fld("rcv_station", 188, i32, vInt, "Receiver station number"),
		fld("rec_dep", 192, i32, vDouble, "Receiver depth below sea surface"),
		fld("sp", 196, i32, vInt, "Shotpoint number"),
		fld("scalar_sp", 200, i16, vInt, "Scalar applied to shotpoint number"),
		fld("sensor", 202, i16, vInt, "Sensor component"),
		fld("clock_drift", 204, i32, vInt, "Clock drift correction [us]"),
		fld("deploy_day", 208, i16, vInt, "Deployment day of year"),
		fld("recover_day", 210, i16, vInt, "Recovery day of year"),
		fld("device_id", 212, i16, vInt, "Device/trace identifier"),
		fld("scalar_stat", 214, i16, vInt, "Scalar applied to static corrections"),
		fld("azimuth", 216, f32, vFloat, "Sensor azimuth [deg]"),
		fld("tilt", 220, f32, vFloat, "Sensor tilt [deg]"),
		fld("rcv_seq", 224, i32, vInt, "Receiver sequence number"),
	}
}

// nodeFields redefines bytes 205-240 for current node data.
func nodeFields() []Field {
	return []Field{
		fld("node_id", 204, i32, vInt, "Node serial number"),
		fld("rcv_line", 208, i32, vInt, "Receiver line number"),
		fld("sensor", 212, i16, vInt, "Sensor component"),
		fld("scalar_stat", 214, i16, vInt, "Scalar applied to static corrections"),
		fld("rec_dep", 216, i32, vDouble, "Receiver depth below sea surface"),
		fld("clock_drift", 220, i32, vInt, "Clock drift correction [us]"),
		fld("azimuth", 224, f32, vFloat, "Sensor azimuth [deg]"),
		fld("tilt", 228, f32, vFloat, "Sensor tilt [deg]"),
		fld("rcv_station", 232, i32, vInt, "Receiver station number"),
		fld("rcv_seq", 236, i32, vInt, "Receiver sequence number"),
	}
}

// suBaseFields is bytes 1-180 under the Seismic Unix key names.
func suBaseFields() []Field {
	return []Field{
		fld("tracl", 0, i32, vInt, "Trace sequence number within line"),
		fld("tracr", 4, i32, vInt, "Trace sequence number within reel"),
		fld("fldr", 8, i32, vInt, "Field record number"),
		fld("tracf", 12, i32, vInt, "Trace number within field record"),
		fld("ep", 16, i32, vInt, "Energy source point number"),
		fld("cdp", 20, i32, vInt, "CDP ensemble number"),
		fld("cdpt", 24, i32, vInt, "Trace number within CDP ensemble"),
		fld("trid", 28, i16, vInt, "Trace identification code"),
		fld("nvs", 30, i16, vInt, "Number of vertically summed traces"),
		fld("nhs", 32, i16, vInt, "Number of horizontally summed traces"),
		fld("duse", 34, i16, vInt, "Data use"),
		fld("offset", 36, i32, vInt, "Source to receiver distance"),
		fld("gelev", 40, i32, vDouble, "Receiver group elevation"),
		fld("selev", 44, i32, vDouble, "Surface elevation at source"),
		fld("sdepth", 48, i32, vDouble, "Source depth below surface"),
		fld("gdel", 52, i32, vDouble, "Datum elevation at receiver group"),
		fld("sdel", 56, i32, vDouble, "Datum elevation at source"),
		fld("swdep", 60, i32, vDouble, "Water depth at source"),
		fld("gwdep", 64, i32, vDouble, "Water depth at receiver group"),
		fld("scalel", 68, i16, vInt, "Scalar applied to elevations and depths"),
		fld("scalco", 70, i16, vInt, "Scalar applied to coordinates"),
		fld("sx", 72, i32, vDouble, "Source X coordinate"),
		fld("sy", 76, i32, vDouble, "Source Y coordinate"),
		fld("gx", 80, i32, vDouble, "Receiver group X coordinate"),
		fld("gy", 84, i32, vDouble, "Receiver group Y coordinate"),
		fld("counit", 88, i16, vInt, "Coordinate units"),
		fld("wevel", 90, i16, vInt, "Weathering velocity"),
		fld("swevel", 92, i16, vInt, "Subweathering velocity"),
		fld("sut", 94, i16, vInt, "Uphole time at source [ms]"),
		fld("gut", 96, i16, vInt, "Uphole time at receiver group [ms]"),
		fld("sstat", 98, i16, vInt, "Source static correction [ms]"),
		fld("gstat", 100, i16, vInt, "Group static correction [ms]"),
		fld("tstat", 102, i16, vInt, "Total static applied [ms]"),
		fld("laga", 104, i16, vInt, "Lag time A [ms]"),
		fld("lagb", 106, i16, vInt, "Lag time B [ms]"),
		fld("delrt", 108, i16, vInt, "Delay recording time [ms]"),
		fld("muts", 110, i16, vInt, "Mute time start [ms]"),
		fld("mute", 112, i16, vInt, "Mute time end [ms]"),
		fld("ns", 114, u16, vInt, "Number of samples in this trace"),
		fld("dt", 116, u16, vInt, "Sample interval [us]"),
		fld("gain", 118, i16, vInt, "Gain type of field instruments"),
		fld("igc", 120, i16, vInt, "Instrument gain constant"),
		fld("igi", 122, i16, vInt, "Instrument early or initial gain"),
		fld("corr", 124, i16, vInt, "Correlated (1=no, 2=yes)"),
		fld("sfs", 126, i16, vInt, "Sweep frequency at start [Hz]"),
		fld("sfe", 128, i16, vInt, "Sweep frequency at end [Hz]"),
		fld("slen", 130, i16, vInt, "Sweep length [ms]"),
		fld("styp", 132, i16, vInt, "Sweep type"),
		fld("stas", 134, i16, vInt, "Sweep taper length at start [ms]"),
		fld("stae", 136, i16, vInt, "Sweep taper length at end [ms]"),
		fld("tatyp", 138, i16, vInt, "Taper type"),
		fld("afilf", 140, i16, vInt, "Alias filter frequency [Hz]"),
		fld("afils", 142, i16, vInt, "Alias filter slope"),
		fld("nofilf", 144, i16, vInt, "Notch filter frequency [Hz]"),
		fld("nofils", 146, i16, vInt, "Notch filter slope"),
		fld("lcf", 148, i16, vInt, "Low-cut frequency [Hz]"),
		fld("hcf", 150, i16, vInt, "High-cut frequency [Hz]"),
		fld("lcs", 152, i16, vInt, "Low-cut slope"),
		fld("hcs", 154, i16, vInt, "High-cut slope"),
		fld("year", 156, i16, vInt, "Year data recorded"),
		fld("day", 158, i16, vInt, "Day of year"),
		fld("hour", 160, i16, vInt, "Hour of day"),
		fld("minute", 162, i16, vInt, "Minute of hour"),
		fld("sec", 164, i16, vInt, "Second of minute"),
		fld("timbas", 166, i16, vInt, "Time basis code"),
		fld("trwf", 168, i16, vInt, "Trace weighting factor"),
		fld("grnors", 170, i16, vInt, "Geophone group number of roll switch position one"),
		fld("grnofr", 172, i16, vInt, "Geophone group number of first trace"),
		fld("grnlof", 174, i16, vInt, "Geophone group number of last trace"),
		fld("gaps", 176, i16, vInt, "Gap size"),
		fld("otrav", 178, i16, vInt, "Overtravel associated with taper"),
	}
}

// suExtensionFields is the Seismic Unix use of bytes 181-212.
func suExtensionFields() []Field {
	return []Field{
		fld("d1", 180, f32, vFloat, "Sample spacing for non-seismic data"),
		fld("f1", 184, f32, vFloat, "First sample location for non-seismic data"),
		fld("d2", 188, f32, vFloat, "Sample spacing between traces"),
		fld("f2", 192, f32, vFloat, "First trace location"),
		fld("ungpow", 196, f32, vFloat, "Negative of power used for dynamic range compression"),
		fld("unscale", 200, f32, vFloat, "Reciprocal of scaling factor to normalize range"),
		fld("ntr", 204, i32, vInt, "Number of traces"),
		fld("mark", 208, i16, vInt, "Mark selected traces"),
		fld("shortpad", 210, i16, vInt, "Alignment padding"),
	}
}

// suOnlyFields keeps the keys needed to interpret SU data plus the SU
// extension block.
func suOnlyFields() []Field {
	base := []Field{
		fld("tracl", 0, i32, vInt, "Trace sequence number within line"),
		fld("fldr", 8, i32, vInt, "Field record number"),
		fld("tracf", 12, i32, vInt, "Trace number within field record"),
		fld("trid", 28, i16, vInt, "Trace identification code"),
		fld("offset", 36, i32, vInt, "Source to receiver distance"),
		fld("delrt", 108, i16, vInt, "Delay recording time [ms]"),
		fld("ns", 114, u16, vInt, "Number of samples in this trace"),
		fld("dt", 116, u16, vInt, "Sample interval [us]"),
	}

	return append(base, suExtensionFields()...)
}
