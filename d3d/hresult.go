package d3d

import (
	"errors"
	"strconv"
)

const (
	ERROR_INVALID_ARG                         _DXGI_ERROR = 0x80070057
	ERROR_OUT_OF_MEMORY                       _DXGI_ERROR = 0x8007000E
	ERROR_NO_INTERFACE                        _DXGI_ERROR = 0x80004002
	ERROR_FAIL                                _DXGI_ERROR = 0x80004005
	DXGI_ERROR_ACCESS_LOST                    _DXGI_ERROR = 0x887A0026
	DXGI_ERROR_INVALID_CALL                   _DXGI_ERROR = 0x887A0001
	DXGI_ERROR_WAIT_TIMEOUT                   _DXGI_ERROR = 0x887A0027
	DXGI_ERROR_WAS_STILL_DRAWING              _DXGI_ERROR = 0x887A000A
	DXGI_ERROR_UNSUPPORTED                    _DXGI_ERROR = 0x887A0004
	DXGI_ERROR_DEVICE_REMOVED                 _DXGI_ERROR = 0x887A0005
	DXGI_ERROR_DEVICE_HUNG                    _DXGI_ERROR = 0x887A0006
	DXGI_ERROR_DEVICE_RESET                   _DXGI_ERROR = 0x887A0007
	D3D11_ERROR_TOO_MANY_UNIQUE_STATE_OBJECTS _DXGI_ERROR = 0x887C0001
)

// _DXGI_ERROR is a failed HRESULT returned by a DXGI or D3D11 call.
type _DXGI_ERROR uint32

func (e _DXGI_ERROR) Error() string {
	switch e {
	case ERROR_INVALID_ARG:
		return "ERROR_INVALID_ARG"
	case ERROR_OUT_OF_MEMORY:
		return "ERROR_OUT_OF_MEMORY"
	case ERROR_NO_INTERFACE:
		return "ERROR_NO_INTERFACE"
	case ERROR_FAIL:
		return "ERROR_FAIL"
	case DXGI_ERROR_ACCESS_LOST:
		return "DXGI_ERROR_ACCESS_LOST"
	case DXGI_ERROR_INVALID_CALL:
		return "DXGI_ERROR_INVALID_CALL"
	case DXGI_ERROR_WAIT_TIMEOUT:
		return "DXGI_ERROR_WAIT_TIMEOUT"
	case DXGI_ERROR_WAS_STILL_DRAWING:
		return "DXGI_ERROR_WAS_STILL_DRAWING"
	case DXGI_ERROR_UNSUPPORTED:
		return "DXGI_ERROR_UNSUPPORTED"
	case DXGI_ERROR_DEVICE_REMOVED:
		return "DXGI_ERROR_DEVICE_REMOVED"
	case DXGI_ERROR_DEVICE_HUNG:
		return "DXGI_ERROR_DEVICE_HUNG"
	case DXGI_ERROR_DEVICE_RESET:
		return "DXGI_ERROR_DEVICE_RESET"
	case D3D11_ERROR_TOO_MANY_UNIQUE_STATE_OBJECTS:
		return "D3D11_ERROR_TOO_MANY_UNIQUE_STATE_OBJECTS"
	}

	return "0x" + strconv.FormatUint(uint64(e), 16)
}

func failed(hr int32) bool {
	return hr < 0
}

// IsDeviceLost reports whether err means the device is gone and everything
// created on it has to be recreated.
func IsDeviceLost(err error) bool {
	var hr _DXGI_ERROR
	if !errors.As(err, &hr) {
		return false
	}
	switch hr {
	case DXGI_ERROR_DEVICE_REMOVED, DXGI_ERROR_DEVICE_RESET, DXGI_ERROR_DEVICE_HUNG, DXGI_ERROR_ACCESS_LOST:
		return true
	}
	return false
}
