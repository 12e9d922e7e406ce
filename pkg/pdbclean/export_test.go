package pdbclean

// Things only the tests need from outside the package.

var (
	WriteTo     = writeTo
	IsMalformed = isMalformed
)
