package resolver

// stdlibModules are the top-level modules shipped with CPython 3.12
var stdlibModules = []string{
	"__future__", "_thread", "abc", "aifc", "argparse", "array", "ast",
	"asynchat", "asyncio", "asyncore", "atexit", "audioop", "base64", "bdb",
	"binascii", "bisect", "builtins", "bz2", "calendar", "cgi", "cgitb",
	"chunk", "cmath", "cmd", "code", "codecs", "codeop", "collections",
	"colorsys", "compileall", "concurrent", "configparser", "contextlib",
	"contextvars", "copy", "copyreg", "cProfile", "crypt", "csv", "ctypes",
	"curses", "dataclasses", "datetime", "dbm", "decimal", "difflib", "dis",
	"doctest", "email", "encodings", "ensurepip", "enum", "errno",
	"faulthandler", "fcntl", "filecmp", "fileinput", "fnmatch", "fractions",
	"ftplib", "functools", "gc", "getopt", "getpass", "gettext", "glob",
	"graphlib", "grp", "gzip", "hashlib", "heapq", "hmac", "html", "http",
	"idlelib", "imaplib", "imghdr", "importlib", "inspect", "io",
	"ipaddress", "itertools", "json", "keyword", "lib2to3", "linecache",
	"locale", "logging", "lzma", "mailbox", "mailcap", "marshal", "math",
	"mimetypes", "mmap", "modulefinder", "msvcrt", "multiprocessing",
	"netrc", "nis", "nntplib", "numbers", "operator", "optparse", "os",
	"ossaudiodev", "pathlib", "pdb", "pickle", "pickletools", "pipes",
	"pkgutil", "platform", "plistlib", "poplib", "posix", "pprint",
	"profile", "pstats", "pty", "pwd", "py_compile", "pyclbr", "pydoc",
	"queue", "quopri", "random", "re", "readline", "reprlib", "resource",
	"rlcompleter", "runpy", "sched", "secrets", "select", "selectors",
	"shelve", "shlex", "shutil", "signal", "site", "smtplib", "sndhdr",
	"socket", "socketserver", "spwd", "sqlite3", "ssl", "stat",
	"statistics", "string", "stringprep", "struct", "subprocess", "sunau",
	"symtable", "sys", "sysconfig", "syslog", "tabnanny", "tarfile",
	"telnetlib", "tempfile", "termios", "textwrap", "threading", "time",
	"timeit", "tkinter", "token", "tokenize", "tomllib", "trace",
	"traceback", "tracemalloc", "tty", "turtle", "turtledemo", "types",
	"typing", "unicodedata", "unittest", "urllib", "uu", "uuid", "venv",
	"warnings", "wave", "weakref", "webbrowser", "winreg", "winsound",
	"wsgiref", "xdrlib", "xml", "xmlrpc", "zipapp", "zipfile", "zipimport",
	"zlib", "zoneinfo",
}

// stdlibSubmodules are the importable dotted modules below the standard
// library packages. A dotted stdlib name not listed here does not exist.
var stdlibSubmodules = []string{
	"asyncio.base_events", "asyncio.constants", "asyncio.coroutines",
	"asyncio.events", "asyncio.exceptions", "asyncio.futures", "asyncio.locks",
	"asyncio.protocols", "asyncio.queues", "asyncio.runners",
	"asyncio.selector_events", "asyncio.streams", "asyncio.subprocess",
	"asyncio.taskgroups", "asyncio.tasks", "asyncio.timeouts",
	"asyncio.transports", "asyncio.unix_events", "asyncio.windows_events",
	"collections.abc",
	"concurrent.futures", "concurrent.futures.process",
	"concurrent.futures.thread",
	"ctypes.util", "ctypes.wintypes",
	"curses.ascii", "curses.panel", "curses.textpad",
	"dbm.dumb", "dbm.gnu", "dbm.ndbm",
	"email.charset", "email.contentmanager", "email.encoders", "email.errors",
	"email.feedparser", "email.generator", "email.header",
	"email.headerregistry", "email.iterators", "email.message", "email.mime",
	"email.mime.application", "email.mime.audio", "email.mime.base",
	"email.mime.image", "email.mime.message", "email.mime.multipart",
	"email.mime.nonmultipart", "email.mime.text", "email.parser",
	"email.policy", "email.utils",
	"encodings.aliases", "encodings.ascii", "encodings.base64_codec",
	"encodings.idna", "encodings.latin_1", "encodings.punycode",
	"encodings.utf_16", "encodings.utf_8", "encodings.utf_8_sig",
	"html.entities", "html.parser",
	"http.client", "http.cookiejar", "http.cookies", "http.server",
	"importlib.abc", "importlib.machinery", "importlib.metadata",
	"importlib.resources", "importlib.resources.abc", "importlib.util",
	"json.decoder", "json.encoder", "json.scanner", "json.tool",
	"logging.config", "logging.handlers",
	"multiprocessing.connection", "multiprocessing.context",
	"multiprocessing.dummy", "multiprocessing.managers",
	"multiprocessing.pool", "multiprocessing.process",
	"multiprocessing.queues", "multiprocessing.shared_memory",
	"multiprocessing.sharedctypes", "multiprocessing.synchronize",
	"os.path",
	"sqlite3.dbapi2",
	"tkinter.colorchooser", "tkinter.commondialog", "tkinter.constants",
	"tkinter.dnd", "tkinter.filedialog", "tkinter.font", "tkinter.messagebox",
	"tkinter.scrolledtext", "tkinter.simpledialog", "tkinter.tix",
	"tkinter.ttk",
	"unittest.async_case", "unittest.case", "unittest.loader",
	"unittest.main", "unittest.mock", "unittest.result", "unittest.runner",
	"unittest.signals", "unittest.suite", "unittest.util",
	"urllib.error", "urllib.parse", "urllib.request", "urllib.response",
	"urllib.robotparser",
	"wsgiref.handlers", "wsgiref.headers", "wsgiref.simple_server",
	"wsgiref.types", "wsgiref.util", "wsgiref.validate",
	"xml.dom", "xml.dom.NodeFilter", "xml.dom.expatbuilder",
	"xml.dom.minicompat", "xml.dom.minidom", "xml.dom.pulldom",
	"xml.dom.xmlbuilder", "xml.etree", "xml.etree.ElementInclude",
	"xml.etree.ElementPath", "xml.etree.ElementTree",
	"xml.etree.cElementTree", "xml.parsers", "xml.parsers.expat",
	"xml.parsers.expat.errors", "xml.parsers.expat.model", "xml.sax",
	"xml.sax.expatreader", "xml.sax.handler", "xml.sax.saxutils",
	"xml.sax.xmlreader",
	"xmlrpc.client", "xmlrpc.server",
}
