package telnet

// A good place to start with the Telnet protocol is Wikipedia:
// https://en.wikipedia.org/wiki/Telnet
//
// This implementation covers what's generally needed to talk to
// terminal emulators and MUD/BBS clients in the wild: option
// negotiation, IAC escaping, and NAWS/TTYPE sub-negotiation.
//
// RFCs of particular interest:
// - RFC 854  : Telnet Protocol Specification
// - RFC 856  : Telnet Binary Transmission
// - RFC 857  : Telnet Echo Option
// - RFC 858  : Telnet Suppress Go Ahead Option
// - RFC 1073 : Telnet Window Size Option
// - RFC 1572 : Telnet Environment Option (replaces RFC 1404)

const (
	SE   byte = 240 // Sub negotiation End
	NOP  byte = 241 // No Operation
	DM   byte = 242 // Data Mark
	BRK  byte = 243 // Break
	IP   byte = 244 // Interrupt Process
	AO   byte = 245 // Abort Output
	AYT  byte = 246 // Are You There?
	EC   byte = 247 // Erase Character
	EL   byte = 248 // Erase Line
	GA   byte = 249 // Go Ahead
	SB   byte = 250 // Sub negotiation Begin
	WILL byte = 251
	WONT byte = 252
	DO   byte = 253
	DONT byte = 254
	IAC  byte = 255 // Interpret As Command

	IS   byte = 0
	SEND byte = 1

	TransmitBinary byte = 0  // RFC 854
	Echo           byte = 1  // RFC 857
	SGA            byte = 3  // RFC 858
	TType          byte = 24 // RFC 930
	NAWS           byte = 31 // RFC 1073
)

// CommandNames maps Telnet command bytes to their string representation.
var CommandNames = map[byte]string{
	SE: "SE", NOP: "NOP", DM: "DM", BRK: "BRK", IP: "IP", AO: "AO",
	AYT: "AYT", EC: "EC", EL: "EL", GA: "GA", SB: "SB",
	WILL: "WILL", WONT: "WONT", DO: "DO", DONT: "DONT", IAC: "IAC",
}

// OptionNames maps Telnet option bytes to their string representation.
var OptionNames = map[byte]string{
	TransmitBinary: "TransmitBinary",
	Echo:           "Echo",
	SGA:            "SGA",
	TType:          "TType",
	NAWS:           "NAWS",
}
