// Package appconfig declares the tdo configuration document.
//
// The file is a single JSON object, for example:
//
//	{
//	    "todo_file": "todo.txt",
//	    "editor": "nvim",
//	    "tags": ["home", "work"],
//	    "last_sync": "2024-01-01T00:00:00Z",
//	    "default_priority": 2,
//	    "sync": {
//	        "interval": "15m0s"
//	    },
//	    "ui": {
//	        "color": "auto"
//	    }
//	}
//
// Every key is optional. Missing keys read as their defaults; archive_file
// defaults to the todo file name with an ".archive" suffix.
package appconfig
