// 17 Oct 2026

/*
Pdbclean takes a PDB file from Discovery Studio and renames residues and
atoms so gromacs will accept it.

Usage:

	pdbclean [flags] [input.pdb [output.pdb]]
	pdbclean clean input.pdb [output.pdb]
	pdbclean info input.pdb
	pdbclean batch -o dir [-j n] [-k] input.pdb...
	pdbclean watch input.pdb [output.pdb]

With no arguments, the help is printed. If no output name is given, the
result goes to new.pdb. Input may be gzipped.

The renaming:

	HIS  becomes HIP if it has HD1 and HE2, HIE if it has only HE2,
	     otherwise HID
	ASP  becomes ASH if it has HD2
	GLU  becomes GLH if it has HE2
	1OCT and 2OCT become OC1 and OC2 in any residue

Residues are found by watching the residue number change. TER lines are
kept where they were. The first line of the file is the title, and
"by supernova" is added to it.

Flags for every command:

	--config file
	    	settings from a .yaml, .yml or .toml file. Flags win.
	--layout legacy|standard
	    	legacy is column for column what the old program wrote,
	    	with the element one column too far right. standard puts
	    	element and charge in columns 77-80.
	--legacy
	    	behave like the old program. The first residue number is
	    	read from line 4, and a last residue without a TER after
	    	it is lost.
	--log dest
	    	"stdout", "stderr", a file name, or "" to throw it away
	--log-level level
	    	debug, info, warn or error
	--metrics-file file
	    	write prometheus metrics here when finished

The info command prints the number of records, residues and chains, what
would be renamed, the centre of the atoms, the size of the box around
them and the radius of gyration.

Batch converts files concurrently into a directory. A trailing .gz is
dropped from the output names. Without -k, the first failure stops
files which have not been started.

Watch converts once, then again whenever the input is saved. Errors
are logged and watching goes on. Stop it with an interrupt.

Exit status is 0 on success, 1 if a conversion failed and 2 for a
command line or configuration mistake.
*/
package main
