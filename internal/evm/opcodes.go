// Package evm holds the fixed EVM instruction vocabulary as Huff spells it.
package evm

import (
	"fmt"
	"sort"
)

// Opcode is a single EVM instruction mnemonic and its byte value.
type Opcode struct {
	Name string
	Byte byte
}

// Hex returns the byte as 0xNN.
func (o Opcode) Hex() string {
	return fmt.Sprintf("0x%02x", o.Byte)
}

var opcodes = []Opcode{
	{"stop", 0x00}, {"add", 0x01}, {"mul", 0x02}, {"sub", 0x03}, {"div", 0x04},
	{"sdiv", 0x05}, {"mod", 0x06}, {"smod", 0x07}, {"addmod", 0x08}, {"mulmod", 0x09},
	{"exp", 0x0a}, {"signextend", 0x0b},
	{"lt", 0x10}, {"gt", 0x11}, {"slt", 0x12}, {"sgt", 0x13}, {"eq", 0x14},
	{"iszero", 0x15}, {"and", 0x16}, {"or", 0x17}, {"xor", 0x18}, {"not", 0x19},
	{"byte", 0x1a}, {"shl", 0x1b}, {"shr", 0x1c}, {"sar", 0x1d},
	{"sha3", 0x20},
	{"address", 0x30}, {"balance", 0x31}, {"origin", 0x32}, {"caller", 0x33},
	{"callvalue", 0x34}, {"calldataload", 0x35}, {"calldatasize", 0x36},
	{"calldatacopy", 0x37}, {"codesize", 0x38}, {"codecopy", 0x39},
	{"gasprice", 0x3a}, {"extcodesize", 0x3b}, {"extcodecopy", 0x3c},
	{"returndatasize", 0x3d}, {"returndatacopy", 0x3e}, {"extcodehash", 0x3f},
	{"blockhash", 0x40}, {"coinbase", 0x41}, {"timestamp", 0x42}, {"number", 0x43},
	{"difficulty", 0x44}, {"prevrandao", 0x44}, {"gaslimit", 0x45}, {"chainid", 0x46},
	{"selfbalance", 0x47}, {"basefee", 0x48}, {"blobhash", 0x49}, {"blobbasefee", 0x4a},
	{"pop", 0x50}, {"mload", 0x51}, {"mstore", 0x52}, {"mstore8", 0x53},
	{"sload", 0x54}, {"sstore", 0x55}, {"jump", 0x56}, {"jumpi", 0x57},
	{"pc", 0x58}, {"msize", 0x59}, {"gas", 0x5a}, {"jumpdest", 0x5b},
	{"tload", 0x5c}, {"tstore", 0x5d}, {"mcopy", 0x5e}, {"push0", 0x5f},
	{"create", 0xf0}, {"call", 0xf1}, {"callcode", 0xf2}, {"return", 0xf3},
	{"delegatecall", 0xf4}, {"create2", 0xf5}, {"staticcall", 0xfa},
	{"revert", 0xfd}, {"invalid", 0xfe}, {"selfdestruct", 0xff},
}

var byName map[string]Opcode

func init() {
	for i := 1; i <= 32; i++ {
		opcodes = append(opcodes, Opcode{Name: fmt.Sprintf("push%d", i), Byte: byte(0x5f + i)})
	}
	for i := 1; i <= 16; i++ {
		opcodes = append(opcodes,
			Opcode{Name: fmt.Sprintf("dup%d", i), Byte: byte(0x7f + i)},
			Opcode{Name: fmt.Sprintf("swap%d", i), Byte: byte(0x8f + i)},
		)
	}
	for i := 0; i <= 4; i++ {
		opcodes = append(opcodes, Opcode{Name: fmt.Sprintf("log%d", i), Byte: byte(0xa0 + i)})
	}
	sort.SliceStable(opcodes, func(i, j int) bool { return opcodes[i].Byte < opcodes[j].Byte })

	byName = make(map[string]Opcode, len(opcodes))
	for _, op := range opcodes {
		byName[op.Name] = op
	}
}

// Opcodes returns every mnemonic in byte order. The slice is shared; do not modify.
func Opcodes() []Opcode {
	return opcodes
}

// Lookup finds an opcode by its lowercase mnemonic.
func Lookup(name string) (Opcode, bool) {
	op, ok := byName[name]
	return op, ok
}

// IsOpcode reports whether name is an EVM mnemonic.
func IsOpcode(name string) bool {
	_, ok := byName[name]
	return ok
}
